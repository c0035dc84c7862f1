// Package schnorr signs and verifies BIP340 Schnorr signatures with x-only
// public keys.
package schnorr

import (
	"p256k.lol/engine"
	"p256k.lol/hex"
	"p256k.lol/p256k"
	"p256k.lol/signer"
)

// SignatureLen is the length of a BIP340 signature, R.x then s.
const SignatureLen = engine.SignatureLen

// Signature is a BIP340 signature. It has no encoding other than its 64 bytes.
type Signature struct {
	b [SignatureLen]byte
}

var _ signer.DataSignature = (*Signature)(nil)

// SignatureFromBytes wraps a 64 byte signature.
func SignatureFromBytes(b []byte) (s *Signature, err error) {
	if len(b) != SignatureLen {
		err = p256k.SizeError("schnorr signature", len(b), SignatureLen)
		return
	}
	s = &Signature{b: [SignatureLen]byte(b)}
	return
}

// Bytes returns a copy of the signature.
func (s *Signature) Bytes() []byte { return append([]byte(nil), s.b[:]...) }

// Equal compares two signatures.
func (s *Signature) Equal(o *Signature) bool { return s.b == o.b }

func (s *Signature) String() string { return hex.Enc(s.b[:]) }
