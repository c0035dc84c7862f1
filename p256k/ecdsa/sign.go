package ecdsa

import (
	"p256k.lol/chk"
	"p256k.lol/digest"
	"p256k.lol/engine"
	"p256k.lol/log"
	"p256k.lol/p256k"
	"p256k.lol/signer"
)

// PrivateKey signs with ECDSA.
type PrivateKey struct {
	*p256k.PrivateKey
}

// PublicKey verifies ECDSA signatures.
type PublicKey struct {
	*p256k.PublicKey
}

var (
	_ signer.DigestSigner[*Signature]   = (*PrivateKey)(nil)
	_ signer.DigestVerifier[*Signature] = (*PublicKey)(nil)
)

// NewPrivateKey generates a signing key.
func NewPrivateKey(format p256k.Format) (k *PrivateKey, err error) {
	var pk *p256k.PrivateKey
	if pk, err = p256k.NewPrivateKey(format); chk.E(err) {
		return
	}
	k = &PrivateKey{pk}
	return
}

// PrivateKeyFromBytes loads a 32 byte signing key.
func PrivateKeyFromBytes(b []byte, format p256k.Format) (k *PrivateKey, err error) {
	var pk *p256k.PrivateKey
	if pk, err = p256k.PrivateKeyFromBytes(b, format); chk.E(err) {
		return
	}
	k = &PrivateKey{pk}
	return
}

// PublicKey returns the verifying key.
func (k *PrivateKey) PublicKey() *PublicKey { return &PublicKey{k.PrivateKey.PublicKey()} }

// SignDigest signs a 32 byte digest.
func (k *PrivateKey) SignDigest(d digest.T) (s *Signature, err error) {
	var raw []byte
	if raw, err = engine.Default().ECDSASign(k.Bytes(), d.Bytes()); chk.E(err) {
		err = p256k.CryptoError("ecdsa sign", err)
		return
	}
	s = &Signature{raw: [SignatureLen]byte(raw)}
	return
}

// SignData signs the SHA-256 digest of data.
func (k *PrivateKey) SignData(data []byte) (*Signature, error) {
	return k.SignDataWith(data, digest.SHA256)
}

// SignDataWith signs the digest of data computed by h.
func (k *PrivateKey) SignDataWith(data []byte, h digest.Func) (*Signature, error) {
	return k.SignDigest(h(data))
}

// VerifyDigest reports whether sig is a valid lower-S signature of d.
func (p *PublicKey) VerifyDigest(sig *Signature, d digest.T) (valid bool) {
	if sig == nil {
		return
	}
	if valid = engine.Default().ECDSAVerify(sig.raw[:], d.Bytes(), p.Bytes()); !valid {
		log.T.F("ecdsa signature %s does not verify digest %s for %s", sig, d, p.PublicKey)
	}
	return
}

// VerifyData checks sig against the SHA-256 digest of data.
func (p *PublicKey) VerifyData(sig *Signature, data []byte) bool {
	return p.VerifyDataWith(sig, data, digest.SHA256)
}

// VerifyDataWith checks sig against the digest of data computed by h.
func (p *PublicKey) VerifyDataWith(sig *Signature, data []byte, h digest.Func) bool {
	return p.VerifyDigest(sig, h(data))
}
