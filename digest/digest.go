// Package digest provides T, a fixed 32 byte hash value with ordering, and the
// hash function type used by the signing pipeline.
package digest

import (
	"bytes"
	"errors"
	"sort"

	"p256k.lol/chk"
	"p256k.lol/errorf"
	"p256k.lol/hex"
	"p256k.lol/sha256"
)

// Len is the number of bytes in a digest.
const Len = sha256.Size

// ErrShort is returned by New when fewer than Len bytes are given.
var ErrShort = errors.New("digest: input shorter than 32 bytes")

// T is a 32 byte hash. It is a comparable value type, so it can be used as a map
// key, and is never mutated after construction.
type T struct {
	b [Len]byte
}

// Func computes a digest over arbitrary data.
type Func func(data []byte) T

// SHA256 is the default digest Func.
var SHA256 Func = Sum

// Sum returns the SHA-256 digest of data.
func Sum(data []byte) T { return T{b: sha256.Sum256(data)} }

// Tagged returns a Func computing the BIP340 tagged hash of data under tag, for
// domain separated signing with SignDataWith.
func Tagged(tag string) Func {
	t := []byte(tag)
	return func(data []byte) T { return T{b: sha256.TaggedHash(t, data)} }
}

// New copies the first Len bytes of b into a digest. Bytes past Len are ignored,
// so a pre-sized hashing scratch buffer can be passed directly.
func New(b []byte) (d T, err error) {
	if len(b) < Len {
		err = ErrShort
		return
	}
	copy(d.b[:], b[:Len])
	return
}

// FromArray wraps a 32 byte array.
func FromArray(a [Len]byte) T { return T{b: a} }

// FromHex decodes a 64 character hex string into a digest.
func FromHex(s string) (d T, err error) {
	var b []byte
	if b, err = hex.Dec(s); chk.D(err) {
		return
	}
	if len(b) != Len {
		err = errorf.D("digest: hex decodes to %d bytes, want %d", len(b), Len)
		return
	}
	copy(d.b[:], b)
	return
}

// Bytes returns a copy of the digest bytes.
func (d T) Bytes() []byte {
	b := make([]byte, Len)
	copy(b, d.b[:])
	return b
}

// Array returns the digest as an array.
func (d T) Array() [Len]byte { return d.b }

// Len returns the number of bytes in the digest.
func (d T) Len() int { return Len }

// Compare orders digests lexicographically by their bytes.
func (d T) Compare(o T) int { return bytes.Compare(d.b[:], o.b[:]) }

// Less reports whether d sorts before o.
func (d T) Less(o T) bool { return d.Compare(o) < 0 }

// Equal reports whether both digests hold the same bytes.
func (d T) Equal(o T) bool { return d.b == o.b }

// String returns the lowercase hex form of the digest.
func (d T) String() string { return hex.Enc(d.b[:]) }

// Sort orders a slice of digests ascending.
func Sort(ds []T) { sort.Slice(ds, func(i, j int) bool { return ds[i].Less(ds[j]) }) }
