package worker

import (
	"golang.org/x/sync/errgroup"
)

// forEachChunk splits the rows [lo, hi) into at most threads contiguous
// chunks and runs fn on them concurrently. It returns the first error.
func forEachChunk(threads, lo, hi int, fn func(lo, hi int) error) error {
	n := hi - lo
	if threads <= 1 || n <= 1 {
		return fn(lo, hi)
	}

	chunks := min(threads, n)
	base, extra := n/chunks, n%chunks

	var g errgroup.Group

	start := lo
	for c := 0; c < chunks; c++ {
		size := base
		if c < extra {
			size++
		}

		chunkLo, chunkHi := start, start+size
		g.Go(func() error {
			return fn(chunkLo, chunkHi)
		})

		start = chunkHi
	}

	return g.Wait()
}
