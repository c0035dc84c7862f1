// Package ecdsa signs and verifies ECDSA signatures over secp256k1.
//
// A Signature is held in its raw form, 64 bytes of big endian r and s, and
// converts to the strict DER form and the 64 byte compact form through the EC
// engine. Signing is deterministic (RFC 6979) and always produces the lower-S
// form; verification rejects the upper-S twin, so foreign signatures may need
// Normalize first.
package ecdsa
