package p256k

import (
	"bytes"

	"p256k.lol/chk"
	"p256k.lol/engine"
	"p256k.lol/hex"
)

// XonlyKey is a BIP340 public key, the x coordinate of a point whose y is
// even.
type XonlyKey struct {
	x [XonlyKeyLen]byte
}

// XonlyKeyFromBytes parses a 32 byte x-only key.
func XonlyKeyFromBytes(b []byte) (x *XonlyKey, err error) {
	if len(b) != XonlyKeyLen {
		err = SizeError("x-only public key", len(b), XonlyKeyLen)
		return
	}
	if err = engine.Default().XonlyParse(b); chk.D(err) {
		err = CryptoError("parse x-only public key", err)
		return
	}
	x = &XonlyKey{x: [XonlyKeyLen]byte(b)}
	return
}

// Bytes returns a copy of the x coordinate.
func (x *XonlyKey) Bytes() []byte { return append([]byte(nil), x.x[:]...) }

// Parity is the y parity of the key, which is always even, reported as false.
func (x *XonlyKey) Parity() bool { return false }

// PublicKey returns the even-y compressed public key with this x coordinate.
func (x *XonlyKey) PublicKey() (p *PublicKey, err error) {
	return PublicKeyFromBytes(append([]byte{2}, x.x[:]...), Compressed)
}

// Equal reports whether both keys have the same x coordinate.
func (x *XonlyKey) Equal(o *XonlyKey) bool { return x.x == o.x }

// Compare orders keys by their bytes.
func (x *XonlyKey) Compare(o *XonlyKey) int { return bytes.Compare(x.x[:], o.x[:]) }

func (x *XonlyKey) String() string { return hex.Enc(x.x[:]) }
