// Package pool implements a fixed pool of workers for asynchronous execution of tasks
// with a barrier wait for the moment all submitted tasks have completed.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrInvalidWorkersCount = errors.New("workers count must be positive")
	ErrNilTask             = errors.New("task is nil")
	ErrStopped             = errors.New("pool is stopped")
)

// Task is a unit of work with all of its inputs already captured.
type Task func()

// Runner is an interface for a task that can be executed in worker pool.
type Runner interface {
	Job(ctx context.Context)
}

// Stats is a snapshot of the pool state.
type Stats struct {
	Workers   int
	Running   int
	Queued    int
	Submitted uint64
	Completed uint64
	Abandoned uint64
}

// Pool carries a shared task queue, its lock, the work and drained conditions and the workers.
type Pool struct {
	mu      sync.Mutex
	work    *sync.Cond // queue is not empty or the pool is stopping
	drained *sync.Cond // nothing queued and nothing running, or the pool is stopping
	queue   queue
	running int
	stopped bool

	submitted uint64
	completed uint64
	abandoned uint64

	start      sync.WaitGroup
	finish     sync.WaitGroup
	workersCnt int
	stopOnce   sync.Once
	opts       options
}

// New creates a worker pool and starts its workers. It returns only after
// every worker is ready to receive tasks.
func New(workersCnt int, opts ...Option) (*Pool, error) {
	if workersCnt <= 0 {
		return nil, fmt.Errorf("new pool with %d workers: %w", workersCnt, ErrInvalidWorkersCount)
	}

	p := &Pool{
		workersCnt: workersCnt,
		opts:       defaultOptions(),
	}
	for _, opt := range opts {
		opt(&p.opts)
	}
	p.work = sync.NewCond(&p.mu)
	p.drained = sync.NewCond(&p.mu)

	p.start.Add(workersCnt)
	p.finish.Add(workersCnt)
	for i := 0; i < workersCnt; i++ {
		go p.worker()
	}
	p.start.Wait()

	p.opts.log.Println("pool", "status", "started", "workers", workersCnt)
	return p, nil
}

// Submit appends a task to the tail of the queue and wakes one idle worker.
// It never blocks: when all workers are busy the task waits in the queue.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return ErrNilTask
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrStopped
	}
	p.queue.push(task)
	p.submitted++
	p.work.Signal()

	return nil
}

// Execute submits a runner bound to the pool context.
func (p *Pool) Execute(r Runner) error {
	if r == nil {
		return ErrNilTask
	}

	ctx := p.opts.ctx
	return p.Submit(func() {
		r.Job(ctx)
	})
}

// Wait blocks until the queue is empty and the last dequeued task has returned.
// After Stop it returns as soon as no task is running.
// It must not be called from a task: the calling task counts as running.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for !p.idle() {
		p.drained.Wait()
	}
}

// Stop signals shutdown, wakes every worker and waits until all of them exit.
// Running tasks are allowed to finish. Queued tasks are abandoned unless the
// pool was created with WithDrainOnStop.
// It must not be called from a task: it would wait for its own worker to exit.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		p.work.Broadcast()
		p.drained.Broadcast()
		p.mu.Unlock()

		p.finish.Wait()

		p.mu.Lock()
		abandoned := p.queue.len()
		p.abandoned += uint64(abandoned)
		p.queue.reset()
		p.drained.Broadcast()
		p.mu.Unlock()

		p.opts.log.Println("pool", "status", "stopped", "abandoned", abandoned)
	})
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Workers:   p.workersCnt,
		Running:   p.running,
		Queued:    p.queue.len(),
		Submitted: p.submitted,
		Completed: p.completed,
		Abandoned: p.abandoned,
	}
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return p.workersCnt
}

func (p *Pool) worker() {
	defer p.finish.Done()

	p.mu.Lock()
	p.start.Done()
	for {
		for p.queue.len() == 0 && !p.stopped {
			p.work.Wait()
		}
		if p.stopped && (!p.opts.drainOnStop || p.queue.len() == 0) {
			p.mu.Unlock()
			return
		}

		task := p.queue.pop()
		p.running++
		p.mu.Unlock()

		task()

		p.mu.Lock()
		p.running--
		p.completed++
		if p.idle() {
			p.drained.Broadcast()
		}
	}
}

// idle must be called with p.mu held.
func (p *Pool) idle() bool {
	if p.running > 0 {
		return false
	}
	return p.queue.len() == 0 || (p.stopped && !p.opts.drainOnStop)
}
