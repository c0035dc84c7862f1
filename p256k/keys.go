package p256k

import (
	"crypto/subtle"

	"github.com/decred/dcrd/crypto/rand"

	"p256k.lol/chk"
	"p256k.lol/engine"
	"p256k.lol/hex"
)

// Lengths of the key encodings.
const (
	SecKeyLen             = engine.SecKeyLen
	PubKeyLenCompressed   = engine.PubKeyLenCompressed
	PubKeyLenUncompressed = engine.PubKeyLenUncompressed
	XonlyKeyLen           = engine.XonlyLen
)

// Format selects the encoding of a public key.
type Format int

const (
	// Compressed is the 33 byte 02/03 prefixed encoding.
	Compressed Format = iota
	// Uncompressed is the 65 byte 04 prefixed encoding.
	Uncompressed
)

// Len is the encoded length of a public key in this format.
func (f Format) Len() int {
	if f == Uncompressed {
		return PubKeyLenUncompressed
	}
	return PubKeyLenCompressed
}

func (f Format) String() string {
	if f == Uncompressed {
		return "uncompressed"
	}
	return "compressed"
}

// PrivateKey is a secret scalar, nonzero and below the group order. Format is
// the encoding of the public key derived from it.
type PrivateKey struct {
	key [SecKeyLen]byte
	pub *PublicKey
}

// NewPrivateKey generates a key from the system CSPRNG.
func NewPrivateKey(format Format) (k *PrivateKey, err error) {
	e := engine.Default()
	var b [SecKeyLen]byte
	for {
		rand.Read(b[:])
		if e.SecKeyVerify(b[:]) {
			break
		}
	}
	k, err = newPrivateKey(b, format)
	clear(b[:])
	return
}

// PrivateKeyFromBytes loads a 32 byte big endian secret key.
func PrivateKeyFromBytes(b []byte, format Format) (k *PrivateKey, err error) {
	if len(b) != SecKeyLen {
		err = SizeError("private key", len(b), SecKeyLen)
		return
	}
	if !engine.Default().SecKeyVerify(b) {
		err = CryptoError("private key is zero or not below the group order", nil)
		return
	}
	return newPrivateKey([SecKeyLen]byte(b), format)
}

func newPrivateKey(b [SecKeyLen]byte, format Format) (k *PrivateKey, err error) {
	k = &PrivateKey{key: b}
	var pk []byte
	if pk, err = engine.Default().PubKeyCreate(b[:], true); chk.E(err) {
		k, err = nil, CryptoError("derive public key", err)
		return
	}
	if k.pub, err = publicKeyFromEngine(pk, format); chk.E(err) {
		k = nil
	}
	return
}

// Bytes returns a copy of the secret key.
func (k *PrivateKey) Bytes() []byte { return append([]byte(nil), k.key[:]...) }

// Format returns the encoding of the public key.
func (k *PrivateKey) Format() Format { return k.pub.format }

// PublicKey returns the public key of k in the format of k.
func (k *PrivateKey) PublicKey() *PublicKey { return k.pub }

// XonlyKey returns the BIP340 public key of k.
func (k *PrivateKey) XonlyKey() *XonlyKey { return k.pub.XonlyKey() }

// Negate returns the key n - k, whose public key has the opposite y parity.
func (k *PrivateKey) Negate() (neg *PrivateKey, err error) {
	var b []byte
	if b, err = engine.Default().SecKeyNegate(k.key[:]); chk.E(err) {
		err = CryptoError("negate private key", err)
		return
	}
	return newPrivateKey([SecKeyLen]byte(b), k.pub.format)
}

// Equal compares the secret scalars in constant time.
func (k *PrivateKey) Equal(o *PrivateKey) bool {
	return subtle.ConstantTimeCompare(k.key[:], o.key[:]) == 1
}

// Zero wipes the secret key. The key must not be used afterwards.
func (k *PrivateKey) Zero() { clear(k.key[:]) }

// PublicKey is a curve point in compressed or uncompressed encoding.
type PublicKey struct {
	compressed   [PubKeyLenCompressed]byte
	uncompressed [PubKeyLenUncompressed]byte
	format       Format
}

// PublicKeyFromBytes parses an encoded public key. The length must match
// format.
func PublicKeyFromBytes(b []byte, format Format) (p *PublicKey, err error) {
	if len(b) != format.Len() {
		err = SizeError(format.String()+" public key", len(b), format.Len())
		return
	}
	var pk []byte
	if pk, err = engine.Default().PubKeyParse(b, true); chk.D(err) {
		err = CryptoError("parse public key", err)
		return
	}
	return publicKeyFromEngine(pk, format)
}

// publicKeyFromEngine fills both encodings from an engine produced compressed
// key.
func publicKeyFromEngine(compressed []byte, format Format) (p *PublicKey, err error) {
	var u []byte
	if u, err = engine.Default().PubKeyParse(compressed, false); chk.D(err) {
		err = CryptoError("parse public key", err)
		return
	}
	p = &PublicKey{format: format}
	copy(p.compressed[:], compressed)
	copy(p.uncompressed[:], u)
	return
}

// Bytes returns the key in its own format.
func (p *PublicKey) Bytes() []byte {
	if p.format == Uncompressed {
		return append([]byte(nil), p.uncompressed[:]...)
	}
	return append([]byte(nil), p.compressed[:]...)
}

// Format returns the encoding used by Bytes.
func (p *PublicKey) Format() Format { return p.format }

// Compressed returns the same point in compressed format.
func (p *PublicKey) Compressed() *PublicKey {
	c := *p
	c.format = Compressed
	return &c
}

// Uncompressed returns the same point in uncompressed format.
func (p *PublicKey) Uncompressed() *PublicKey {
	u := *p
	u.format = Uncompressed
	return &u
}

// Negate returns the point with the opposite y coordinate.
func (p *PublicKey) Negate() (neg *PublicKey, err error) {
	var b []byte
	if b, err = engine.Default().PubKeyNegate(p.compressed[:], true); chk.E(err) {
		err = CryptoError("negate public key", err)
		return
	}
	return publicKeyFromEngine(b, p.format)
}

// XonlyKey drops the y coordinate.
func (p *PublicKey) XonlyKey() *XonlyKey {
	return &XonlyKey{x: [XonlyKeyLen]byte(p.compressed[1:])}
}

// OddY reports whether the y coordinate is odd.
func (p *PublicKey) OddY() bool { return p.compressed[0] == 3 }

// Equal reports whether both keys are the same point, in any format.
func (p *PublicKey) Equal(o *PublicKey) bool { return p.compressed == o.compressed }

func (p *PublicKey) String() string { return hex.Enc(p.Bytes()) }
