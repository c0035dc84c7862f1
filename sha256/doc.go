// Package sha256 provides SHA-256 through github.com/minio/sha256-simd, which
// uses the SHA extensions or AVX512 where the CPU has them, plus the BIP340
// tagged hash construction.
package sha256
