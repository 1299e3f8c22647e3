// Package parallel provides a small helper for splitting row-wise work
// across CPU cores. Distance computations in cluster and per-column passes
// in stats use it; everything stays in-process and blocking.
package parallel

import (
	"runtime"
	"sync"
)

// minChunk is the smallest range worth handing to a goroutine. Below this,
// scheduling overhead dominates the work itself.
const minChunk = 64

// Parallelize splits [0, items) into contiguous ranges and runs fn on each
// range concurrently. It blocks until all ranges are done. fn must be safe
// to call from multiple goroutines on disjoint ranges.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if chunks := (items + minChunk - 1) / minChunk; workers > chunks {
		workers = chunks
	}
	if workers <= 1 {
		fn(0, items)
		return
	}

	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
