// Package workerpool implements the pluggable task-dispatch pool used to run
// per-block compress/decompress tasks (§4.2, §4.7). It scales goroutines
// between a floor and a ceiling, draining idle workers after a timeout, in
// the manner of the teacher's internal/pkg/wpool package; here the pool is
// exposed behind the single-method Submit interface the frame core expects,
// so a caller can swap in any other implementation (e.g. gammazero/workerpool)
// without the core knowing the difference.
package workerpool

import (
	"runtime"
	"slices"
	"sync"
	"time"
)

const (
	defaultDrainTick = 10 * time.Second
	defaultDrainMax  = 30 * time.Second
)

// Option configures a Pool at construction time.
type Option func(*config)

type config struct {
	maxWorkers int
	minWorkers int
	prealloc   int
	drainTick  time.Duration
	drainMax   time.Duration
}

// WithMaxWorkers bounds concurrent goroutines; defaults to runtime.NumCPU().
func WithMaxWorkers(n int) Option {
	return func(c *config) { c.maxWorkers = n }
}

// WithMinWorkers keeps at least n goroutines alive even when idle.
func WithMinWorkers(n int) Option {
	return func(c *config) { c.minWorkers = n }
}

// WithPreallocWorkers starts n goroutines immediately instead of lazily.
func WithPreallocWorkers(n int) Option {
	return func(c *config) { c.prealloc = n }
}

// WithDrainInterval sets how often idle workers above minWorkers are swept.
func WithDrainInterval(tick, max time.Duration) Option {
	return func(c *config) { c.drainTick, c.drainMax = tick, max }
}

func buildConfig(opts ...Option) config {
	c := config{
		maxWorkers: runtime.NumCPU(),
		drainTick:  defaultDrainTick,
		drainMax:   defaultDrainMax,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.minWorkers < 0 {
		c.minWorkers = 0
	}
	return c
}

// Pool dispatches submitted tasks onto a bounded, auto-scaling goroutine set.
type Pool struct {
	mu         sync.Mutex
	tasks      []func()
	taskHead   int
	idle       []*worker
	numWorkers int
	maxWorkers int
	minWorkers int
}

type worker struct {
	idleSince int64
	tasks     chan func()
}

// New constructs a Pool. It implements the Submit(func()) interface the root
// package's Context expects for dispatching per-block work.
func New(opts ...Option) *Pool {
	c := buildConfig(opts...)

	p := &Pool{
		tasks:      make([]func(), 0, c.maxWorkers),
		idle:       make([]*worker, 0, c.maxWorkers),
		maxWorkers: c.maxWorkers,
		minWorkers: c.minWorkers,
	}

	n := min(c.maxWorkers, max(c.prealloc, c.minWorkers))
	for i := 0; i < n; i++ {
		w := newWorker()
		p.numWorkers++
		p.idle = append(p.idle, w)
		go w.run(p)
	}

	if p.maxWorkers > 0 {
		go p.drainLoop(c.drainTick, c.drainMax)
	}

	return p
}

// Submit enqueues task, reusing an idle worker, spawning a new one up to
// maxWorkers, or queuing it for the next worker to free up.
func (p *Pool) Submit(task func()) {
	p.mu.Lock()

	if n := len(p.idle); n > 0 {
		w := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		w.tasks <- task
		return
	}

	if p.numWorkers < p.maxWorkers {
		p.numWorkers++
		p.mu.Unlock()
		w := newWorker()
		go w.run(p)
		w.tasks <- task
		return
	}

	if p.maxWorkers > 0 {
		p.tasks = append(p.tasks, task)
	}
	p.mu.Unlock()
}

// Close stops all workers and discards any queued tasks.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.maxWorkers = 0
	for _, w := range p.idle {
		close(w.tasks)
	}
	p.idle = nil
	p.tasks = nil
	p.taskHead = 0
}

func (p *Pool) drainLoop(tick, max time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for range t.C {
		if !p.sweepIdle(max) {
			return
		}
	}
}

func (p *Pool) sweepIdle(max time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.maxWorkers <= 0 {
		return false
	}

	now := time.Now().UnixNano()
	i := 0
	for ; i < len(p.idle); i++ {
		if len(p.idle)-i <= p.minWorkers {
			break
		}
		if now-p.idle[i].idleSince < int64(max) {
			break
		}
		close(p.idle[i].tasks)
	}

	if i > 0 {
		p.idle = p.idle[i:]
		p.numWorkers -= i
	}

	if p.taskHead > 0 {
		p.tasks = slices.Delete(p.tasks, 0, p.taskHead)
		p.taskHead = 0
	}

	return true
}

func (p *Pool) nextOrIdle(w *worker) (func(), bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.maxWorkers <= 0 {
		p.numWorkers--
		return nil, false
	}

	if len(p.tasks)-p.taskHead == 0 {
		w.idleSince = time.Now().UnixNano()
		p.idle = append(p.idle, w)
		return nil, true
	}

	task := p.tasks[p.taskHead]
	p.taskHead++
	return task, true
}

func newWorker() *worker {
	return &worker{tasks: make(chan func(), 1)}
}

func (w *worker) run(p *Pool) {
	for task := range w.tasks {
		task()
		for {
			next, ok := p.nextOrIdle(w)
			if !ok {
				return
			}
			if next == nil {
				break
			}
			next()
		}
	}
}
