package ecdsa

import (
	"bytes"

	"p256k.lol/chk"
	"p256k.lol/engine"
	"p256k.lol/hex"
	"p256k.lol/p256k"
	"p256k.lol/signer"
)

const (
	// SignatureLen is the length of the raw and compact forms.
	SignatureLen = engine.SignatureLen
	// MaxDERLen is the length of the scratch buffer for the DER form.
	MaxDERLen = engine.MaxDERLen
)

// Signature is an ECDSA signature in raw form.
type Signature struct {
	raw [SignatureLen]byte
}

var (
	_ signer.DataSignature    = (*Signature)(nil)
	_ signer.DERSignature     = (*Signature)(nil)
	_ signer.CompactSignature = (*Signature)(nil)
)

// SignatureFromRaw wraps 64 bytes of r and s, both of which must be below the
// group order. A high s is accepted here and rejected by verification.
func SignatureFromRaw(b []byte) (s *Signature, err error) {
	if len(b) != SignatureLen {
		err = p256k.SizeError("raw ecdsa signature", len(b), SignatureLen)
		return
	}
	if _, err = engine.Default().ECDSAParseCompact(b); chk.D(err) {
		err = p256k.CryptoError("parse raw signature", err)
		return
	}
	s = &Signature{raw: [SignatureLen]byte(b)}
	return
}

// SignatureFromDER parses a strict DER signature.
func SignatureFromDER(b []byte) (s *Signature, err error) {
	var raw []byte
	if raw, err = engine.Default().ECDSAParseDER(b); chk.D(err) {
		err = p256k.CryptoError("parse DER signature", err)
		return
	}
	s = &Signature{raw: [SignatureLen]byte(raw)}
	return
}

// SignatureFromCompact parses the 64 byte compact form, which requires r and s
// below the group order.
func SignatureFromCompact(b []byte) (s *Signature, err error) {
	if len(b) != SignatureLen {
		err = p256k.SizeError("compact ecdsa signature", len(b), SignatureLen)
		return
	}
	var raw []byte
	if raw, err = engine.Default().ECDSAParseCompact(b); chk.D(err) {
		err = p256k.CryptoError("parse compact signature", err)
		return
	}
	s = &Signature{raw: [SignatureLen]byte(raw)}
	return
}

// Bytes returns the raw form.
func (s *Signature) Bytes() []byte { return append([]byte(nil), s.raw[:]...) }

// DER returns the DER form, at most MaxDERLen bytes.
func (s *Signature) DER() (b []byte, err error) {
	out := make([]byte, MaxDERLen)
	var n int
	if n, err = engine.Default().ECDSASerializeDER(s.raw[:], out); chk.E(err) {
		err = p256k.CryptoError("serialize DER signature", err)
		return
	}
	b = out[:n]
	return
}

// Compact returns the compact form.
func (s *Signature) Compact() (b []byte, err error) {
	if b, err = engine.Default().ECDSASerializeCompact(s.raw[:]); chk.E(err) {
		err = p256k.CryptoError("serialize compact signature", err)
	}
	return
}

// Normalize returns the lower-S form of s, and whether it differs from s.
func (s *Signature) Normalize() (norm *Signature, changed bool, err error) {
	var raw []byte
	if raw, changed, err = engine.Default().ECDSANormalize(s.raw[:]); chk.E(err) {
		err = p256k.CryptoError("normalize signature", err)
		return
	}
	norm = &Signature{raw: [SignatureLen]byte(raw)}
	return
}

// Equal compares the raw forms.
func (s *Signature) Equal(o *Signature) bool { return bytes.Equal(s.raw[:], o.raw[:]) }

func (s *Signature) String() string { return hex.Enc(s.raw[:]) }
