package p256k

import (
	"p256k.lol/chk"
	"p256k.lol/engine"
)

// SharedSecretLen is the length of an ECDH shared secret.
const SharedSecretLen = engine.SharedSecretLen

// SharedSecret computes the ECDH shared point k·pub and returns it compressed.
// Both parties get the same 33 bytes; hash them before use as a symmetric key.
func (k *PrivateKey) SharedSecret(pub *PublicKey) (secret []byte, err error) {
	if secret, err = engine.Default().ECDH(k.key[:], pub.compressed[:]); chk.E(err) {
		err = CryptoError("ecdh", err)
	}
	return
}
