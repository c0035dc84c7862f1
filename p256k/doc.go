// Package p256k holds secp256k1 keys: PrivateKey, PublicKey in compressed or
// uncompressed form, and the BIP340 XonlyKey. Keys are validated by the EC
// engine when they are constructed and never change afterwards; derived forms
// such as negations are new values.
//
// Signing lives in the ecdsa and schnorr subpackages. Public keys convert to
// and from the X.509 SubjectPublicKeyInfo structure in DER or PEM form.
package p256k
