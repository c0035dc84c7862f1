package der

import (
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// MaxSignatureLen is the longest DER encoding of two 256 bit integers.
const MaxSignatureLen = 72

// MarshalSignature encodes two big endian unsigned integers as
// SEQUENCE { INTEGER r, INTEGER s }. The values are encoded as given, with no
// canonicalization of s.
func MarshalSignature(r, s []byte) ([]byte, error) {
	b := cryptobyte.NewBuilder(make([]byte, 0, MaxSignatureLen))
	b.AddASN1(asn1.SEQUENCE, func(c *cryptobyte.Builder) {
		c.AddASN1BigInt(new(big.Int).SetBytes(r))
		c.AddASN1BigInt(new(big.Int).SetBytes(s))
	})
	return b.Bytes()
}

// ParseSignature decodes SEQUENCE { INTEGER r, INTEGER s } into two 32 byte
// big endian values. Negative integers, values wider than 32 bytes and trailing
// data are rejected; range checks against the group order are left to the
// caller.
func ParseSignature(b []byte) (r, s [32]byte, err error) {
	input := cryptobyte.String(b)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() {
		err = parseError("expected a single signature SEQUENCE")
		return
	}
	ri, si := new(big.Int), new(big.Int)
	if !seq.ReadASN1Integer(ri) || !seq.ReadASN1Integer(si) || !seq.Empty() {
		err = parseError("expected SEQUENCE of two INTEGERs")
		return
	}
	for _, v := range []*big.Int{ri, si} {
		if v.Sign() < 0 || v.BitLen() > 256 {
			err = parseError("signature integer out of range")
			return
		}
	}
	ri.FillBytes(r[:])
	si.FillBytes(s[:])
	return
}
