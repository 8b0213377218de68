package core

import (
	"context"
	"runtime"
	"sync"

	"sweeptide/internal/mathutil"
)

// ParallelMap applies fn to every item on up to NumCPU goroutines and
// returns the results in input order.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	return ParallelMapWithContext(context.Background(), items, fn)
}

// ParallelMapWithContext is ParallelMap with cancellation between items.
// Slots for items skipped after cancellation hold the zero value.
func ParallelMapWithContext[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, (len(items)+numWorkers-1)/numWorkers)

	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start, end := i, mathutil.IntMin(i+chunkSize, len(items))

		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := start; j < end; j++ {
				if ctx.Err() != nil {
					return
				}
				results[j] = fn(items[j])
			}
		}()
	}

	wg.Wait()
	return results
}
