package signer

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// VerifyBatch runs verify for every index below n on up to workers goroutines
// and returns the indexes that did not verify, in ascending order. A workers
// value below one uses one goroutine per CPU. When ctx is cancelled before all
// items are checked the items not yet checked are not reported and the context
// error is returned.
func VerifyBatch(c context.Context, n, workers int,
	verify func(i int) bool) (invalid []int, err error) {

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	group, ctx := errgroup.WithContext(c)
	group.SetLimit(workers)
	var mx sync.Mutex
	for i := range n {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() (err error) {
			if err = ctx.Err(); err != nil {
				return
			}
			if !verify(i) {
				mx.Lock()
				invalid = append(invalid, i)
				mx.Unlock()
			}
			return
		})
	}
	if err = group.Wait(); err == nil {
		err = c.Err()
	}
	sort.Ints(invalid)
	return
}
