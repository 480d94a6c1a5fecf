package analyzer

import (
	"runtime"
	"sync"
)

// WorkerPool runs per-frame scoring jobs for batch analysis.
type WorkerPool struct {
	workers   int
	jobQueue  chan func()
	startOnce sync.Once
	closeOnce sync.Once
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A size of zero or less uses the CPU count.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers. Safe to call more than once.
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
	}
}

// Submit adds a job to the queue. Blocks when the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Close shuts down the pool. Submitting after Close panics.
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.jobQueue)
	})
}
