package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs submitted jobs on a fixed set of goroutines
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once

	completed SafeCounter
	skipped   SafeCounter
}

// NewWorkerPool creates a pool; numWorkers <= 0 uses the CPU count
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit queues a job, blocking while the queue is full
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- func() {
		job()
		wp.completed.Increment()
	}
}

// SubmitWithContext queues a job that is dropped if ctx is done by the time
// a worker picks it up.
func (wp *WorkerPool) SubmitWithContext(ctx context.Context, job func(ctx context.Context)) {
	wp.wg.Add(1)
	wp.jobQueue <- func() {
		if ctx.Err() != nil {
			wp.skipped.Increment()
			return
		}
		job(ctx)
		wp.completed.Increment()
	}
}

// Wait blocks until every queued job has finished
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts the workers down. Jobs still queued are abandoned.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// ParallelForWithContext calls fn for every index in [start, end), split
// into one chunk per worker, and waits for all chunks.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}

	chunkSize := max(1, (end-start)/wp.numWorkers)
	for i := start; i < end; i += chunkSize {
		chunkStart, chunkEnd := i, min(i+chunkSize, end)
		wp.SubmitWithContext(ctx, func(ctx context.Context) {
			for j := chunkStart; j < chunkEnd; j++ {
				if ctx.Err() != nil {
					return
				}
				fn(j)
			}
		})
	}
	wp.Wait()
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Completed counts jobs that ran to completion
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Get()
}

// Skipped counts jobs dropped because their context was done
func (wp *WorkerPool) Skipped() int64 {
	return wp.skipped.Get()
}

// SafeCounter is a lock-free counter
type SafeCounter struct {
	value atomic.Int64
}

func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment adds one and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Add adds delta and returns the new value
func (c *SafeCounter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}

func (c *SafeCounter) Set(value int64) {
	c.value.Store(value)
}
