package sha256

import (
	"hash"

	"github.com/minio/sha256-simd"
	"github.com/puzpuzpuz/xsync/v3"
)

const (
	// Size is the length of a SHA-256 checksum in bytes.
	Size = sha256.Size
	// BlockSize is the block size of SHA-256 in bytes.
	BlockSize = sha256.BlockSize
)

// Sum256 returns the SHA-256 checksum of the data.
func Sum256(data []byte) [Size]byte { return sha256.Sum256(data) }

// New returns a new hash.Hash computing the SHA-256 checksum.
func New() hash.Hash { return sha256.New() }

// Common BIP340 tags.
var (
	TagAux       = []byte("BIP0340/aux")
	TagNonce     = []byte("BIP0340/nonce")
	TagChallenge = []byte("BIP0340/challenge")
)

// tags caches sha256(tag) so repeated tagged hashes skip hashing the tag.
var tags = xsync.NewMapOf[string, [Size]byte]()

// TaggedHash implements sha256(sha256(tag) || sha256(tag) || msgs...) as
// defined by BIP340.
func TaggedHash(tag []byte, msgs ...[]byte) (h [Size]byte) {
	th, _ := tags.LoadOrCompute(string(tag), func() [Size]byte {
		return sha256.Sum256(tag)
	})
	s := sha256.New()
	s.Write(th[:])
	s.Write(th[:])
	for _, m := range msgs {
		s.Write(m)
	}
	s.Sum(h[:0])
	return
}
