package buffer

import "sync"

// Pool provides sync.Pool-based Block reuse for host-side work such as
// offline rendering and analysis. It must not be used inside a node's
// Process: getting from a pool may allocate.
type Pool[T Sample] struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool[T Sample]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return New[T](0, 0)
			},
		},
	}
}

// Get returns a zeroed Block with at least the requested capacity.
// Callers must return it via Put when done.
func (p *Pool[T]) Get(channels, frames int) *Block[T] {
	b := p.pool.Get().(*Block[T])
	if !b.Fits(channels, frames) {
		b = New[T](max(channels, b.Channels()), max(frames, b.Frames()))
	}
	b.Zero()
	return b
}

// Put returns a Block to the pool for reuse.
// The caller must not use the block after calling Put.
func (p *Pool[T]) Put(b *Block[T]) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
