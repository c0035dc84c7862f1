// Package signer defines the capabilities of keys and signatures: what a
// signature can be encoded as, and what a key can sign or verify.
package signer

import (
	"p256k.lol/digest"
)

// DataSignature is a signature with a fixed raw byte form.
type DataSignature interface {
	// Bytes returns a copy of the raw signature.
	Bytes() []byte
}

// DERSignature is a signature with an ASN.1 DER form.
type DERSignature interface {
	DER() ([]byte, error)
}

// CompactSignature is a signature with a 64 byte compact form.
type CompactSignature interface {
	Compact() ([]byte, error)
}

// DigestSigner signs a 32 byte digest.
type DigestSigner[S DataSignature] interface {
	SignDigest(d digest.T) (sig S, err error)
}

// DigestVerifier checks a signature over a 32 byte digest. Verification does
// not fail with an error, an unusable signature or key is not valid.
type DigestVerifier[S DataSignature] interface {
	VerifyDigest(sig S, d digest.T) bool
}

// I is a key holder that signs and verifies BIP340 signatures over 32 byte
// messages and does ECDH.
type I interface {
	// Generate creates a fresh new key pair from system entropy, and ensures it
	// is even (so ECDH works).
	Generate() (err error)
	// InitSec initialises the secret (signing) key from the raw bytes, and also
	// derives the public key because it can.
	InitSec(sec []byte) (err error)
	// InitPub initializes the public (verification) key from raw bytes.
	InitPub(pub []byte) (err error)
	// Sec returns the secret key bytes.
	Sec() []byte
	// Pub returns the public key bytes (x-only schnorr pubkey).
	Pub() []byte
	// ECPub returns the public key bytes (33 byte ecdsa pubkey). The first byte
	// is always 2 due to ECDH and X-only keys.
	ECPub() []byte
	// Sign creates a signature using the stored secret key.
	Sign(msg []byte) (sig []byte, err error)
	// Verify checks a message hash and signature match the stored public key.
	Verify(msg, sig []byte) (valid bool, err error)
	// Zero wipes the secret key to prevent memory leaks.
	Zero()
	// ECDH returns a shared secret derived using Elliptic Curve Diffie Hellman
	// on the I secret and provided pubkey.
	ECDH(pub []byte) (secret []byte, err error)
	// Negate flips the the secret key to change between odd and even
	// compressed public key.
	Negate()
}
