package schnorr

import (
	"github.com/decred/dcrd/crypto/rand"

	"p256k.lol/chk"
	"p256k.lol/digest"
	"p256k.lol/engine"
	"p256k.lol/log"
	"p256k.lol/p256k"
	"p256k.lol/signer"
)

const (
	// MessageLen is the message length required in strict mode.
	MessageLen = engine.HashLen
	// AuxLen is the length of the auxiliary randomness.
	AuxLen = engine.AuxLen
)

// PrivateKey signs with BIP340.
type PrivateKey struct {
	*p256k.PrivateKey
}

// XonlyKey verifies BIP340 signatures.
type XonlyKey struct {
	*p256k.XonlyKey
}

var (
	_ signer.DigestSigner[*Signature]   = (*PrivateKey)(nil)
	_ signer.DigestVerifier[*Signature] = (*XonlyKey)(nil)
)

// NewPrivateKey generates a signing key.
func NewPrivateKey() (k *PrivateKey, err error) {
	var pk *p256k.PrivateKey
	if pk, err = p256k.NewPrivateKey(p256k.Compressed); chk.E(err) {
		return
	}
	k = &PrivateKey{pk}
	return
}

// PrivateKeyFromBytes loads a 32 byte signing key.
func PrivateKeyFromBytes(b []byte) (k *PrivateKey, err error) {
	var pk *p256k.PrivateKey
	if pk, err = p256k.PrivateKeyFromBytes(b, p256k.Compressed); chk.E(err) {
		return
	}
	k = &PrivateKey{pk}
	return
}

// XonlyKeyFromBytes parses a 32 byte verifying key.
func XonlyKeyFromBytes(b []byte) (x *XonlyKey, err error) {
	var xk *p256k.XonlyKey
	if xk, err = p256k.XonlyKeyFromBytes(b); chk.D(err) {
		return
	}
	x = &XonlyKey{xk}
	return
}

// XonlyKey returns the verifying key.
func (k *PrivateKey) XonlyKey() *XonlyKey { return &XonlyKey{k.PrivateKey.XonlyKey()} }

// SignData signs the SHA-256 digest of data.
func (k *PrivateKey) SignData(data []byte) (*Signature, error) {
	return k.SignDigest(digest.Sum(data))
}

// SignDataWith signs the digest of data computed by h.
func (k *PrivateKey) SignDataWith(data []byte, h digest.Func) (*Signature, error) {
	return k.SignDigest(h(data))
}

// SignDigest signs a digest with fresh auxiliary randomness.
func (k *PrivateKey) SignDigest(d digest.T) (*Signature, error) {
	return k.SignDigestAux(d, nil)
}

// SignDigestAux signs a digest with the given auxiliary randomness, or fresh
// randomness if aux is nil.
func (k *PrivateKey) SignDigestAux(d digest.T, aux []byte) (*Signature, error) {
	return k.SignMessage(d.Bytes(), aux, true)
}

// SignMessage signs msg. In strict mode msg must be 32 bytes, as BIP340
// expects a digest; otherwise any length the engine supports is signed as is.
// A nil aux is replaced by 32 bytes from the system CSPRNG, any other aux must
// be 32 bytes.
func (k *PrivateKey) SignMessage(msg, aux []byte, strict bool) (s *Signature, err error) {
	if strict && len(msg) != MessageLen {
		err = p256k.SizeError("message", len(msg), MessageLen)
		return
	}
	if aux == nil {
		aux = make([]byte, AuxLen)
		rand.Read(aux)
	} else if len(aux) != AuxLen {
		err = p256k.SizeError("aux randomness", len(aux), AuxLen)
		return
	}
	var sig []byte
	if sig, err = engine.Default().SchnorrSign(k.Bytes(), msg,
		engine.NewSchnorrParams(aux)); chk.E(err) {
		err = p256k.CryptoError("schnorr sign", err)
		return
	}
	s = &Signature{b: [SignatureLen]byte(sig)}
	return
}

// VerifyData checks sig against the SHA-256 digest of data.
func (x *XonlyKey) VerifyData(sig *Signature, data []byte) bool {
	return x.VerifyDigest(sig, digest.Sum(data))
}

// VerifyDataWith checks sig against the digest of data computed by h.
func (x *XonlyKey) VerifyDataWith(sig *Signature, data []byte, h digest.Func) bool {
	return x.VerifyDigest(sig, h(data))
}

// VerifyDigest checks sig against a digest.
func (x *XonlyKey) VerifyDigest(sig *Signature, d digest.T) bool {
	return x.VerifyMessage(sig, d.Bytes(), true)
}

// VerifyMessage checks sig against msg. The key is parsed again by the engine
// on every call; any failure, including a wrong message length in strict mode,
// is reported as not valid.
func (x *XonlyKey) VerifyMessage(sig *Signature, msg []byte, strict bool) (valid bool) {
	if sig == nil || (strict && len(msg) != MessageLen) {
		return
	}
	e := engine.Default()
	key := x.Bytes()
	if err := e.XonlyParse(key); chk.D(err) {
		return
	}
	if valid = e.SchnorrVerify(sig.b[:], msg, key); !valid {
		log.T.F("schnorr signature %s does not verify for %s", sig, x.XonlyKey)
	}
	return
}
