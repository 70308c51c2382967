// Package parallel splits row ranges across goroutines for read-only bulk
// work such as bias augmentation and batch prediction. Training loops never
// use it.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the row count at or below which work stays on the
// calling goroutine.
const DefaultThreshold = 1000

// Parallelize divides items into one contiguous [start, end) range per CPU
// core and runs fn on each range concurrently. It returns when every range
// is done. fn must only write to rows inside its own range.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
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

// ParallelizeWithThreshold runs fn(0, items) sequentially when items does not
// exceed threshold and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
