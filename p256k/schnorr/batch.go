package schnorr

import (
	"context"

	"p256k.lol/signer"
)

// BatchItem is one signature to check with VerifyBatch. Msg is verified in
// strict mode and so must be 32 bytes.
type BatchItem struct {
	Key *XonlyKey
	Sig *Signature
	Msg []byte
}

// VerifyBatch checks every item concurrently and returns the indexes of the
// items that are not valid. An item with a nil key is not valid.
func VerifyBatch(c context.Context, items []BatchItem, workers int) (invalid []int, err error) {
	return signer.VerifyBatch(c, len(items), workers, func(i int) bool {
		it := items[i]
		if it.Key == nil {
			return false
		}
		return it.Key.VerifyMessage(it.Sig, it.Msg, true)
	})
}
