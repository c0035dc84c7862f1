package p256k

import (
	"p256k.lol/chk"
	"p256k.lol/der"
)

// SubjectPublicKeyInfo wraps the key in its own format with the secp256k1
// algorithm identifier.
func (p *PublicKey) SubjectPublicKeyInfo() *der.SubjectPublicKeyInfo {
	return der.NewSecp256k1(p.Bytes())
}

// DER returns the DER encoded SubjectPublicKeyInfo.
func (p *PublicKey) DER() (b []byte, err error) {
	if b, err = p.SubjectPublicKeyInfo().Marshal(); chk.E(err) {
		err = EncodingError("encode public key", err)
	}
	return
}

// PEM returns the DER encoding armored as a PUBLIC KEY block.
func (p *PublicKey) PEM() (s string, err error) {
	if s, err = p.SubjectPublicKeyInfo().EncodePEM(); chk.E(err) {
		err = EncodingError("encode public key", err)
	}
	return
}

// PublicKeyFromSPKI extracts a secp256k1 key. The algorithm must be
// id-ecPublicKey on the secp256k1 curve; the key format follows from its
// length.
func PublicKeyFromSPKI(spki *der.SubjectPublicKeyInfo) (p *PublicKey, err error) {
	alg := spki.Algorithm
	if !alg.Algorithm.Equal(der.OIDECPublicKey) {
		err = EncodingError("algorithm "+alg.Algorithm.String()+" is not id-ecPublicKey", nil)
		return
	}
	var curve der.OID
	if curve, err = alg.NamedCurve(); chk.D(err) {
		err = EncodingError("read named curve", err)
		return
	}
	if !curve.Equal(der.OIDSecp256k1) {
		err = EncodingError("curve "+curve.String()+" is not secp256k1", nil)
		return
	}
	if spki.PublicKey.UnusedBits != 0 {
		err = EncodingError("public key bit string is not byte aligned", nil)
		return
	}
	key := spki.PublicKey.Bytes
	format := Compressed
	if len(key) == PubKeyLenUncompressed {
		format = Uncompressed
	}
	return PublicKeyFromBytes(key, format)
}

// PublicKeyFromDER parses a DER encoded SubjectPublicKeyInfo.
func PublicKeyFromDER(b []byte) (p *PublicKey, err error) {
	var spki *der.SubjectPublicKeyInfo
	if spki, err = der.ParseSubjectPublicKeyInfo(b); chk.D(err) {
		err = EncodingError("parse public key", err)
		return
	}
	return PublicKeyFromSPKI(spki)
}

// PublicKeyFromPEM parses a PEM armored SubjectPublicKeyInfo.
func PublicKeyFromPEM(s string) (p *PublicKey, err error) {
	var spki *der.SubjectPublicKeyInfo
	if spki, err = der.DecodePEM([]byte(s)); chk.D(err) {
		err = EncodingError("parse public key", err)
		return
	}
	return PublicKeyFromSPKI(spki)
}
