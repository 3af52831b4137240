// Package mempool implements the bounded, blocking buffer pool described in
// §4.2: a fixed number of fixed-size buffers, acquired with Get (blocking
// until one is free or the context is cancelled) and returned with Put. This
// differs deliberately from the teacher's internal/pkg/blk pool, which wraps
// sync.Pool and therefore never bounds concurrent in-flight buffers or
// blocks a caller when exhausted; see DESIGN.md for the rationale.
package mempool

import "context"

// Pool hands out []byte buffers of a fixed capacity, capped at a fixed
// count. Get blocks when the pool is exhausted until a buffer is returned or
// ctx is cancelled.
type Pool struct {
	bufSize int
	free    chan []byte
}

// New creates a Pool of count buffers, each bufSize bytes.
func New(count, bufSize int) *Pool {
	p := &Pool{
		bufSize: bufSize,
		free:    make(chan []byte, count),
	}
	for i := 0; i < count; i++ {
		p.free <- make([]byte, bufSize)
	}
	return p
}

// Get blocks until a buffer is available or ctx is done.
func (p *Pool) Get(ctx context.Context) ([]byte, error) {
	select {
	case buf := <-p.free:
		return buf[:p.bufSize], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put returns buf to the pool. buf must have been obtained from Get on this
// Pool; its length is restored to bufSize before it is recycled.
func (p *Pool) Put(buf []byte) {
	if cap(buf) < p.bufSize {
		return
	}
	select {
	case p.free <- buf[:p.bufSize]:
	default:
		// pool already full; drop rather than block a producer on Put
	}
}

// BufSize returns the fixed buffer capacity handed out by Get.
func (p *Pool) BufSize() int { return p.bufSize }

// Cap returns the maximum number of buffers this pool will hold in flight.
func (p *Pool) Cap() int { return cap(p.free) }
