package core

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolJobExecution(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	var sum atomic.Int64
	for i := 1; i <= 100; i++ {
		pool.Submit(func() { sum.Add(int64(i)) })
	}
	pool.Wait()

	if sum.Load() != 5050 {
		t.Errorf("expected 5050, got %d", sum.Load())
	}
	if pool.Completed() != 100 {
		t.Errorf("expected 100 completed jobs, got %d", pool.Completed())
	}
}

func TestWorkerPoolDefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.NumWorkers() <= 0 {
		t.Errorf("expected a positive worker count, got %d", pool.NumWorkers())
	}
}

func TestWorkerPoolParallelFor(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Stop()

	out := make([]int, 50)
	pool.ParallelForWithContext(context.Background(), 0, len(out), func(i int) {
		out[i] = i * i
	})

	for i, v := range out {
		if v != i*i {
			t.Fatalf("index %d: expected %d, got %d", i, i*i, v)
		}
	}
}

func TestWorkerPoolCancelledJobsAreSkipped(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	pool.SubmitWithContext(ctx, func(context.Context) { ran = true })
	pool.Wait()

	if ran {
		t.Error("job ran after its context was cancelled")
	}
	if pool.Skipped() != 1 {
		t.Errorf("expected 1 skipped job, got %d", pool.Skipped())
	}
}

func TestWorkerPoolStopIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Start()
	pool.Stop()
	pool.Stop()
}

func TestSafeCounter(t *testing.T) {
	counter := NewSafeCounter()
	pool := NewWorkerPool(8)
	pool.Start()
	defer pool.Stop()

	for i := 0; i < 1000; i++ {
		pool.Submit(func() { counter.Increment() })
	}
	pool.Wait()

	if counter.Get() != 1000 {
		t.Errorf("expected 1000, got %d", counter.Get())
	}
	if got := counter.Add(-500); got != 500 {
		t.Errorf("expected 500, got %d", got)
	}
	counter.Set(7)
	if counter.Get() != 7 {
		t.Errorf("expected 7, got %d", counter.Get())
	}
}

func TestParallelMapKeepsOrder(t *testing.T) {
	items := make([]int, 257)
	for i := range items {
		items[i] = i
	}

	got := ParallelMap(items, func(v int) int { return v * 2 })
	if len(got) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(got))
	}
	for i, v := range got {
		if v != i*2 {
			t.Fatalf("index %d: expected %d, got %d", i, i*2, v)
		}
	}

	if ParallelMap([]int(nil), func(v int) int { return v }) != nil {
		t.Error("expected nil for empty input")
	}
}
