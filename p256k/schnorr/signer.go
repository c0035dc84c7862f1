package schnorr

import (
	"p256k.lol/chk"
	"p256k.lol/errorf"
	"p256k.lol/p256k"
	"p256k.lol/signer"
)

// Signer implements signer.I with BIP340 signatures.
//
// Either the secret or the public key must be initialised, the former is for
// generating signatures, the latter is for verifying them.
type Signer struct {
	SecretKey *PrivateKey
	PublicKey *XonlyKey
}

var _ signer.I = &Signer{}

// Generate creates a new key whose public key has an even y coordinate.
func (s *Signer) Generate() (err error) {
	var k *PrivateKey
	if k, err = NewPrivateKey(); chk.E(err) {
		return
	}
	if k.PrivateKey.PublicKey().OddY() {
		var neg *p256k.PrivateKey
		if neg, err = k.Negate(); chk.E(err) {
			return
		}
		k = &PrivateKey{neg}
	}
	s.SecretKey, s.PublicKey = k, k.XonlyKey()
	return
}

// InitSec loads a 32 byte secret key and derives its public key.
func (s *Signer) InitSec(sec []byte) (err error) {
	var k *PrivateKey
	if k, err = PrivateKeyFromBytes(sec); chk.E(err) {
		return
	}
	s.SecretKey, s.PublicKey = k, k.XonlyKey()
	return
}

// InitPub initializes a signer to do verification. This can either be a 33
// byte key with 2 or 3 prefix or an x-only pubkey that is the same without the
// prefix.
func (s *Signer) InitPub(pub []byte) (err error) {
	switch len(pub) {
	case p256k.PubKeyLenCompressed:
		var pk *p256k.PublicKey
		if pk, err = p256k.PublicKeyFromBytes(pub, p256k.Compressed); chk.E(err) {
			return
		}
		s.PublicKey = &XonlyKey{pk.XonlyKey()}
	default:
		var x *XonlyKey
		if x, err = XonlyKeyFromBytes(pub); chk.E(err) {
			return
		}
		s.PublicKey = x
	}
	return
}

// Sec returns the raw secret key bytes.
func (s *Signer) Sec() (b []byte) {
	if s.SecretKey == nil {
		return
	}
	return s.SecretKey.Bytes()
}

// Pub returns the x-only public key bytes.
func (s *Signer) Pub() (b []byte) {
	if s.PublicKey == nil {
		return
	}
	return s.PublicKey.Bytes()
}

// ECPub returns the even compressed public key bytes.
func (s *Signer) ECPub() (b []byte) {
	if s.PublicKey == nil {
		return
	}
	return append([]byte{2}, s.PublicKey.Bytes()...)
}

// Sign a 32 byte message with the Signer. Requires an initialised secret key.
func (s *Signer) Sign(msg []byte) (sig []byte, err error) {
	if s.SecretKey == nil {
		err = errorf.E("schnorr: Signer secret not initialized")
		return
	}
	var si *Signature
	if si, err = s.SecretKey.SignMessage(msg, nil, true); chk.E(err) {
		return
	}
	sig = si.Bytes()
	return
}

// Verify a message signature, only requires the public key is initialised. An
// error is returned for an uninitialised key or a malformed signature; a
// signature that does not match is only reported as not valid.
func (s *Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if s.PublicKey == nil {
		err = errorf.E("schnorr: Signer pubkey not initialized")
		return
	}
	var si *Signature
	if si, err = SignatureFromBytes(sig); chk.D(err) {
		return
	}
	valid = s.PublicKey.VerifyMessage(si, msg, true)
	return
}

// Zero wipes the secret key.
func (s *Signer) Zero() {
	if s.SecretKey != nil {
		s.SecretKey.Zero()
	}
}

// ECDH returns the x coordinate of the shared point of the Signer secret and
// a 32 byte x-only or 33 byte compressed public key.
func (s *Signer) ECDH(pub []byte) (secret []byte, err error) {
	if s.SecretKey == nil {
		err = errorf.E("schnorr: Signer secret not initialized")
		return
	}
	if len(pub) == p256k.XonlyKeyLen {
		pub = append([]byte{2}, pub...)
	}
	var pk *p256k.PublicKey
	if pk, err = p256k.PublicKeyFromBytes(pub, p256k.Compressed); chk.E(err) {
		err = errorf.E("error parsing receiver public key '%0x': %w", pub, err)
		return
	}
	var shared []byte
	if shared, err = s.SecretKey.SharedSecret(pk); chk.E(err) {
		return
	}
	secret = shared[1:]
	return
}

// Negate flips the secret key between the odd and even y public key.
func (s *Signer) Negate() {
	if s.SecretKey == nil {
		return
	}
	neg, err := s.SecretKey.Negate()
	if chk.E(err) {
		return
	}
	s.SecretKey = &PrivateKey{neg}
}
