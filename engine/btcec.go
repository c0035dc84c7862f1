package engine

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"

	"p256k.lol/chk"
	"p256k.lol/errorf"
	"p256k.lol/der"
)

// NameBTCEC names the pure Go engine.
const NameBTCEC = "btcec"

func init() {
	Register(NameBTCEC, 0, func() (Engine, error) { return BTCEC{}, nil })
}

// BTCEC is the pure Go engine. ECDSA, recovery and ECDH use decred
// secp256k1; BIP340 uses the btcec schnorr package, which only signs and
// verifies 32 byte messages.
type BTCEC struct{}

var _ Engine = BTCEC{}

// compact recovery header base, as used by decred SignCompact.
const compactMagic = 27

func (BTCEC) Name() string { return NameBTCEC }

func scalar(b []byte) (s secp256k1.ModNScalar, err error) {
	if len(b) != SecKeyLen {
		err = errors.Errorf("scalar is %d bytes, want %d", len(b), SecKeyLen)
		return
	}
	if overflow := s.SetByteSlice(b); overflow {
		err = errors.New("scalar is not below the group order")
	}
	return
}

func secKey(sk []byte) (k *secp256k1.PrivateKey, err error) {
	var s secp256k1.ModNScalar
	if s, err = scalar(sk); chk.D(err) {
		return
	}
	if s.IsZero() {
		err = errors.New("secret key is zero")
		return
	}
	k = secp256k1.NewPrivateKey(&s)
	return
}

func serialize(pub *secp256k1.PublicKey, compressed bool) []byte {
	if compressed {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}

func checkHash(hash []byte) error {
	if len(hash) != HashLen {
		return errors.Errorf("hash is %d bytes, want %d", len(hash), HashLen)
	}
	return nil
}

func (BTCEC) SecKeyVerify(sk []byte) bool {
	_, err := secKey(sk)
	return !chk.T(err)
}

func (BTCEC) SecKeyNegate(sk []byte) (neg []byte, err error) {
	var k *secp256k1.PrivateKey
	if k, err = secKey(sk); chk.D(err) {
		return
	}
	s := k.Key
	s.Negate()
	b := s.Bytes()
	neg = b[:]
	return
}

func (BTCEC) PubKeyCreate(sk []byte, compressed bool) (pk []byte, err error) {
	var k *secp256k1.PrivateKey
	if k, err = secKey(sk); chk.D(err) {
		return
	}
	pk = serialize(k.PubKey(), compressed)
	return
}

func (BTCEC) PubKeyParse(pk []byte, compressed bool) (out []byte, err error) {
	var pub *secp256k1.PublicKey
	if pub, err = secp256k1.ParsePubKey(pk); chk.D(err) {
		err = errors.Wrap(err, "parse public key")
		return
	}
	out = serialize(pub, compressed)
	return
}

func (BTCEC) PubKeyNegate(pk []byte, compressed bool) (neg []byte, err error) {
	var pub *secp256k1.PublicKey
	if pub, err = secp256k1.ParsePubKey(pk); chk.D(err) {
		err = errors.Wrap(err, "parse public key")
		return
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	p.Y.Negate(1).Normalize()
	neg = serialize(secp256k1.NewPublicKey(&p.X, &p.Y), compressed)
	return
}

func (BTCEC) XonlyFromPubKey(pk []byte) (x []byte, odd bool, err error) {
	var pub *secp256k1.PublicKey
	if pub, err = secp256k1.ParsePubKey(pk); chk.D(err) {
		err = errors.Wrap(err, "parse public key")
		return
	}
	c := pub.SerializeCompressed()
	x, odd = c[1:], c[0] == secp256k1.PubKeyFormatCompressedOdd
	return
}

func (BTCEC) XonlyParse(x []byte) (err error) {
	if _, err = schnorr.ParsePubKey(x); chk.D(err) {
		err = errors.Wrap(err, "parse x-only public key")
	}
	return
}

// signCompact returns decred's 65 byte recoverable form: a header byte holding
// the recovery id, then r and s.
func signCompact(sk, hash []byte) (sig []byte, err error) {
	var k *secp256k1.PrivateKey
	if k, err = secKey(sk); chk.D(err) {
		return
	}
	if err = checkHash(hash); chk.D(err) {
		return
	}
	sig = ecdsa.SignCompact(k, hash, true)
	return
}

func (BTCEC) ECDSASign(sk, hash []byte) (raw []byte, err error) {
	var sig []byte
	if sig, err = signCompact(sk, hash); chk.D(err) {
		return
	}
	raw = sig[1:]
	return
}

// components splits a raw signature into scalars, rejecting values not below
// the group order.
func components(raw []byte) (r, s secp256k1.ModNScalar, err error) {
	if len(raw) != SignatureLen {
		err = errors.Errorf("signature is %d bytes, want %d", len(raw), SignatureLen)
		return
	}
	if r.SetByteSlice(raw[:32]) || s.SetByteSlice(raw[32:]) {
		err = errors.New("signature component is not below the group order")
	}
	return
}

func (BTCEC) ECDSAVerify(raw, hash, pk []byte) bool {
	r, s, err := components(raw)
	if chk.T(err) || s.IsOverHalfOrder() || checkHash(hash) != nil {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pk)
	if chk.T(err) {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(hash, pub)
}

func (BTCEC) ECDSANormalize(raw []byte) (norm []byte, changed bool, err error) {
	var r, s secp256k1.ModNScalar
	if r, s, err = components(raw); chk.D(err) {
		return
	}
	norm = make([]byte, SignatureLen)
	r.PutBytesUnchecked(norm[:32])
	if changed = s.IsOverHalfOrder(); changed {
		s.Negate()
	}
	s.PutBytesUnchecked(norm[32:])
	return
}

func (BTCEC) ECDSAParseDER(sig []byte) (raw []byte, err error) {
	if _, err = ecdsa.ParseDERSignature(sig); chk.D(err) {
		err = errors.Wrap(err, "parse DER signature")
		return
	}
	var r, s [32]byte
	if r, s, err = der.ParseSignature(sig); chk.D(err) {
		return
	}
	raw = append(r[:], s[:]...)
	return
}

func (BTCEC) ECDSASerializeDER(raw, out []byte) (n int, err error) {
	if _, _, err = components(raw); chk.D(err) {
		return
	}
	if len(out) < MaxDERLen {
		err = errors.Errorf("DER output buffer is %d bytes, want %d", len(out), MaxDERLen)
		return
	}
	var b []byte
	if b, err = der.MarshalSignature(raw[:32], raw[32:]); chk.D(err) {
		return
	}
	n = copy(out, b)
	return
}

func (BTCEC) ECDSAParseCompact(compact []byte) (raw []byte, err error) {
	if _, _, err = components(compact); chk.D(err) {
		return
	}
	raw = append([]byte(nil), compact...)
	return
}

func (BTCEC) ECDSASerializeCompact(raw []byte) (compact []byte, err error) {
	if _, _, err = components(raw); chk.D(err) {
		return
	}
	compact = append([]byte(nil), raw...)
	return
}

func (BTCEC) ECDSASignRecoverable(sk, hash []byte) (compact []byte, recid int, err error) {
	var sig []byte
	if sig, err = signCompact(sk, hash); chk.D(err) {
		return
	}
	recid = int(sig[0]-compactMagic) & 3
	compact = sig[1:]
	return
}

func (BTCEC) ECDSARecover(compact []byte, recid int, hash []byte, compressed bool) (pk []byte, err error) {
	if _, _, err = components(compact); chk.D(err) {
		return
	}
	if recid < 0 || recid > 3 {
		err = errors.Errorf("recovery id %d outside 0-3", recid)
		return
	}
	if err = checkHash(hash); chk.D(err) {
		return
	}
	sig := make([]byte, 1, 1+SignatureLen)
	sig[0] = byte(compactMagic + recid + 4)
	sig = append(sig, compact...)
	var pub *secp256k1.PublicKey
	if pub, _, err = ecdsa.RecoverCompact(sig, hash); chk.D(err) {
		err = errors.Wrap(err, "recover public key")
		return
	}
	pk = serialize(pub, compressed)
	return
}

func (BTCEC) SchnorrSign(sk, msg []byte, params *SchnorrParams) (sig []byte, err error) {
	var aux [AuxLen]byte
	if aux, err = params.check(); chk.D(err) {
		return
	}
	var k *secp256k1.PrivateKey
	if k, err = secKey(sk); chk.D(err) {
		return
	}
	if len(msg) != HashLen {
		err = errorf.E("btcec engine signs %d byte messages, got %d", HashLen, len(msg))
		return
	}
	var s *schnorr.Signature
	if s, err = schnorr.Sign((*btcec.PrivateKey)(k), msg, schnorr.CustomNonce(aux)); chk.D(err) {
		err = errors.Wrap(err, "schnorr sign")
		return
	}
	sig = s.Serialize()
	return
}

func (BTCEC) SchnorrVerify(sig, msg, x []byte) bool {
	if len(msg) != HashLen {
		return false
	}
	s, err := schnorr.ParseSignature(sig)
	if chk.T(err) {
		return false
	}
	pub, err := schnorr.ParsePubKey(x)
	if chk.T(err) {
		return false
	}
	return s.Verify(msg, pub)
}

func (BTCEC) ECDH(sk, pk []byte) (secret []byte, err error) {
	var k *secp256k1.PrivateKey
	if k, err = secKey(sk); chk.D(err) {
		return
	}
	var pub *secp256k1.PublicKey
	if pub, err = secp256k1.ParsePubKey(pk); chk.D(err) {
		err = errors.Wrap(err, "parse public key")
		return
	}
	var point, result secp256k1.JacobianPoint
	pub.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&k.Key, &point, &result)
	result.ToAffine()
	secret = secp256k1.NewPublicKey(&result.X, &result.Y).SerializeCompressed()
	return
}
