package ecdsa

import (
	"context"

	"p256k.lol/digest"
	"p256k.lol/signer"
)

// BatchItem is one digest signature to check with VerifyBatch.
type BatchItem struct {
	Key    *PublicKey
	Sig    *Signature
	Digest digest.T
}

// VerifyBatch checks every item concurrently and returns the indexes of the
// items that are not valid. An item with a nil key is not valid.
func VerifyBatch(c context.Context, items []BatchItem, workers int) (invalid []int, err error) {
	return signer.VerifyBatch(c, len(items), workers, func(i int) bool {
		it := items[i]
		if it.Key == nil {
			return false
		}
		return it.Key.VerifyDigest(it.Sig, it.Digest)
	})
}
