package ecdsa

import (
	"p256k.lol/chk"
	"p256k.lol/digest"
	"p256k.lol/engine"
	"p256k.lol/p256k"
)

// RecoverableSignature is a compact signature with the recovery id that picks
// the signing public key out of the up to four candidates.
type RecoverableSignature struct {
	compact [SignatureLen]byte
	recid   int
}

// RecoverableSignatureFromCompact wraps a 64 byte compact signature and a
// recovery id in 0..3.
func RecoverableSignatureFromCompact(b []byte, recid int) (s *RecoverableSignature, err error) {
	if len(b) != SignatureLen {
		err = p256k.SizeError("recoverable signature", len(b), SignatureLen)
		return
	}
	if recid < 0 || recid > 3 {
		err = p256k.CryptoError("recovery id outside 0-3", nil)
		return
	}
	if _, err = engine.Default().ECDSAParseCompact(b); chk.D(err) {
		err = p256k.CryptoError("parse recoverable signature", err)
		return
	}
	s = &RecoverableSignature{compact: [SignatureLen]byte(b), recid: recid}
	return
}

// SignRecoverable signs a digest so that the public key can be recovered from
// the signature.
func (k *PrivateKey) SignRecoverable(d digest.T) (s *RecoverableSignature, err error) {
	var compact []byte
	var recid int
	if compact, recid, err = engine.Default().ECDSASignRecoverable(k.Bytes(), d.Bytes()); chk.E(err) {
		err = p256k.CryptoError("ecdsa sign recoverable", err)
		return
	}
	s = &RecoverableSignature{compact: [SignatureLen]byte(compact), recid: recid}
	return
}

// Compact returns the compact signature and the recovery id.
func (s *RecoverableSignature) Compact() ([]byte, int) {
	return append([]byte(nil), s.compact[:]...), s.recid
}

// RecoveryID returns the recovery id.
func (s *RecoverableSignature) RecoveryID() int { return s.recid }

// Signature drops the recovery id.
func (s *RecoverableSignature) Signature() *Signature { return &Signature{raw: s.compact} }

// Recover returns the public key that signed d, in the given format.
func (s *RecoverableSignature) Recover(d digest.T, format p256k.Format) (p *PublicKey, err error) {
	var pk []byte
	if pk, err = engine.Default().ECDSARecover(s.compact[:], s.recid, d.Bytes(),
		format == p256k.Compressed); chk.D(err) {
		err = p256k.CryptoError("recover public key", err)
		return
	}
	var pub *p256k.PublicKey
	if pub, err = p256k.PublicKeyFromBytes(pk, format); chk.D(err) {
		return
	}
	p = &PublicKey{pub}
	return
}

// RecoverData recovers the public key that signed the SHA-256 digest of data.
func (s *RecoverableSignature) RecoverData(data []byte, format p256k.Format) (*PublicKey, error) {
	return s.Recover(digest.Sum(data), format)
}
