package analyzer

import (
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ScanOptions controls how ScanIndexes partitions work.
type ScanOptions struct {
	// Parallel enables fork-join scanning. When false the scan runs
	// inline on the calling goroutine.
	Parallel bool

	// Workers caps the goroutine count. Zero means GOMAXPROCS.
	Workers int
}

// ScanIndexes runs fn over every dense graph index in [0, n) and
// concatenates the per-chunk results in partition order, so the output
// ordering is identical whether or not the scan runs in parallel. fn
// must be safe for concurrent use and must only read shared state.
func ScanIndexes[T any](n int, opts ScanOptions, fn func(idx uint32) []T) []T {
	if n <= 0 {
		return nil
	}
	if !opts.Parallel {
		var out []T
		for i := 0; i < n; i++ {
			out = append(out, fn(uint32(i))...)
		}
		return out
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	// Chunk the index range so each worker owns a contiguous slice of
	// the arena and writes results into its own partition slot.
	chunk := (n + workers - 1) / workers
	partitions := make([][]T, (n+chunk-1)/chunk)

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(workers)
	for pi := range partitions {
		lo := pi * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		pi := pi
		p.Go(func() {
			var part []T
			for i := lo; i < hi; i++ {
				part = append(part, fn(uint32(i))...)
			}
			mu.Lock()
			partitions[pi] = part
			mu.Unlock()
		})
	}
	p.Wait()

	var out []T
	for _, part := range partitions {
		out = append(out, part...)
	}
	return out
}
