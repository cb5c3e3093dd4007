package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool fans jobs of type T out to a fixed set of goroutines and
// collects one G per job on a buffered channel.
type WorkerPool[T any, G any] struct {
	size    int
	queue   chan T
	results chan G
	running sync.WaitGroup
}

// NewWorkerPool sizes both channels to capacity so Submit never blocks
// while fewer than capacity results are pending.
func NewWorkerPool[T any, G any](size, capacity int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		size:    max(size, 1),
		queue:   make(chan T, capacity),
		results: make(chan G, capacity),
	}
}

func (p *WorkerPool[T, G]) Start(fn JobFunc[T, G]) {
	p.running.Add(p.size)
	for range p.size {
		go func() {
			defer p.running.Done()
			for job := range p.queue {
				p.results <- fn(job)
			}
		}()
	}
}

func (p *WorkerPool[T, G]) Submit(job T) {
	p.queue <- job
}

// Finish stops accepting jobs, waits for the workers to drain the queue and
// closes the results channel.
func (p *WorkerPool[T, G]) Finish() {
	close(p.queue)
	p.running.Wait()
	close(p.results)
}

func (p *WorkerPool[T, G]) Results() <-chan G {
	return p.results
}

// Run pushes every job through a pool of numWorkers and returns the results in
// completion order.
func Run[T any, G any](numWorkers int, jobs []T, fn JobFunc[T, G]) []G {
	pool := NewWorkerPool[T, G](numWorkers, len(jobs))
	pool.Start(fn)
	for _, job := range jobs {
		pool.Submit(job)
	}
	pool.Finish()

	out := make([]G, 0, len(jobs))
	for res := range pool.Results() {
		out = append(out, res)
	}
	return out
}
