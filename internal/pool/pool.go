// Package pool provides object pooling for argparse token buffers
// Used by the parser to reuse the per-parse copies of the command line
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool provides a generic, type-safe object pool
type Pool[T any] struct {
	pool    sync.Pool
	reset   func(*T) // Optional reset function called before reuse
	maxSize int      // Maximum objects to keep (0 = unlimited)
	count   atomic.Int64
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.maxSize > 0 && p.count.Load() > 0 {
		p.count.Add(-1)
	}
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse. Objects beyond the max size
// are dropped.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	if p.maxSize > 0 {
		if p.count.Load() >= int64(p.maxSize) {
			return
		}
		p.count.Add(1)
	}
	p.pool.Put(obj)
}

// SetMaxSize sets the maximum number of objects to keep in the pool
func (p *Pool[T]) SetMaxSize(size int) {
	p.maxSize = size
}

// MaxSize returns the limit set by SetMaxSize, 0 if unlimited.
func (p *Pool[T]) MaxSize() int {
	return p.maxSize
}

// Idle returns how many objects the pool believes it holds. It is only
// tracked while a max size is set.
func (p *Pool[T]) Idle() int64 {
	return p.count.Load()
}

// SlicePool pools slices, handing them out empty with their capacity kept.
type SlicePool[E any] struct {
	*Pool[[]E]
	maxCap int
}

// NewSlicePool creates a slice pool. Slices that grew beyond maxCap are not
// kept so one huge command line does not pin memory.
func NewSlicePool[E any](defaultCap, maxCap int) *SlicePool[E] {
	return &SlicePool[E]{
		Pool: NewPoolWithReset(
			func() *[]E {
				s := make([]E, 0, defaultCap)
				return &s
			},
			func(s *[]E) {
				clear(*s)
				*s = (*s)[:0] // Reset length but keep capacity
			},
		),
		maxCap: maxCap,
	}
}

// Put returns s unless it outgrew the pool.
func (sp *SlicePool[E]) Put(s *[]E) {
	if s == nil || cap(*s) > sp.maxCap {
		return
	}
	sp.Pool.Put(s)
}
