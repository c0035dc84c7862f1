// Package der implements the subset of ASN.1 DER needed to move secp256k1
// public keys in and out of X.509 SubjectPublicKeyInfo structures:
//
//	SubjectPublicKeyInfo ::= SEQUENCE {
//	    algorithm         AlgorithmIdentifier,
//	    subjectPublicKey  BIT STRING }
//
//	AlgorithmIdentifier ::= SEQUENCE {
//	    algorithm   OBJECT IDENTIFIER,
//	    parameters  ANY DEFINED BY algorithm OPTIONAL }
//
// along with the SEQUENCE { INTEGER r, INTEGER s } form of an ECDSA signature.
// Encoding and decoding is done with golang.org/x/crypto/cryptobyte, which
// enforces minimal DER lengths.
package der
