// Package keys has helpers for hex encoded BIP340 keys and signers.
package keys

import (
	"strings"

	"p256k.lol/chk"
	"p256k.lol/hex"
	"p256k.lol/p256k/schnorr"
	"p256k.lol/signer"
)

// GeneratePrivateKey returns a new hex encoded secret key.
var GeneratePrivateKey = func() []byte { return GenerateSecretKeyHex() }

// GenerateSecretKeyHex generates a secret key with an even public key and
// returns it hex encoded.
func GenerateSecretKeyHex() (sks []byte) {
	var err error
	s := &schnorr.Signer{}
	if err = s.Generate(); chk.E(err) {
		return
	}
	sks = []byte(hex.Enc(s.Sec()))
	return
}

// GetPublicKeyHex derives the hex x-only public key of a hex secret key.
func GetPublicKeyHex(sk string) (pk string, err error) {
	var b []byte
	if b, err = hex.Dec(sk); chk.E(err) {
		return
	}
	return SecretBytesToPubKeyHex(b)
}

// SecretBytesToPubKeyHex derives the hex x-only public key of a secret key.
func SecretBytesToPubKeyHex(skb []byte) (pk string, err error) {
	var b []byte
	if b, err = SecretToPubKeyBytes(skb); chk.E(err) {
		return
	}
	pk = hex.Enc(b)
	return
}

// SecretToPubKeyBytes derives the x-only public key of a secret key.
func SecretToPubKeyBytes(skb []byte) (pk []byte, err error) {
	var k *schnorr.PrivateKey
	if k, err = schnorr.PrivateKeyFromBytes(skb); chk.E(err) {
		return
	}
	pk = k.XonlyKey().Bytes()
	return
}

// IsValid32ByteHex reports whether pk is lowercase hex of 32 bytes.
func IsValid32ByteHex(pk string) bool {
	if strings.ToLower(pk) != pk {
		return false
	}
	dec, _ := hex.Dec(pk)
	return len(dec) == 32
}

// IsValidPublicKey reports whether pk is the hex of a valid x-only key.
func IsValidPublicKey(pk string) bool {
	v, err := hex.Dec(pk)
	if chk.T(err) {
		return false
	}
	_, err = schnorr.XonlyKeyFromBytes(v)
	return !chk.T(err)
}

// HexPubkeyToBytes decodes a hex public key.
func HexPubkeyToBytes[V []byte | string](hpk V) (pkb []byte, err error) {
	return hex.DecAppend(nil, []byte(hpk))
}

// FromHsec creates a signer from a hex secret key.
func FromHsec[V string | []byte](sec V) (s signer.I, err error) {
	var sk []byte
	if sk, err = hex.Dec(string(sec)); chk.E(err) {
		return
	}
	sign := &schnorr.Signer{}
	if err = sign.InitSec(sk); chk.E(err) {
		return
	}
	s = sign
	return
}

// FromHpub creates a verifying signer from a hex x-only or compressed public
// key.
func FromHpub[V string | []byte](pub V) (v signer.I, err error) {
	var pk []byte
	if pk, err = hex.Dec(string(pub)); chk.E(err) {
		return
	}
	sign := &schnorr.Signer{}
	if err = sign.InitPub(pk); chk.E(err) {
		return
	}
	v = sign
	return
}
