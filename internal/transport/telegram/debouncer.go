package telegram

import (
	"sync"
	"time"
)

// Debouncer collects items per key and hands the whole batch to flush once
// no new item arrived for the quiet period. Every Add restarts the period.
type Debouncer[T any] struct {
	quiet time.Duration
	flush func(key int64, items []T)

	mu      sync.Mutex
	pending map[int64]*batch[T]
	closed  bool
	wg      sync.WaitGroup
}

type batch[T any] struct {
	items []T
	gen   uint64
	timer *time.Timer
}

// NewDebouncer creates a Debouncer. flush runs on its own goroutine.
func NewDebouncer[T any](quiet time.Duration, flush func(key int64, items []T)) *Debouncer[T] {
	return &Debouncer[T]{
		quiet:   quiet,
		flush:   flush,
		pending: make(map[int64]*batch[T]),
	}
}

// Add appends item to the batch of key and reschedules its flush. It
// reports false after Close.
func (d *Debouncer[T]) Add(key int64, item T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}

	b, ok := d.pending[key]
	if !ok {
		b = &batch[T]{}
		d.pending[key] = b
	}
	b.items = append(b.items, item)

	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.timer = time.AfterFunc(d.quiet, func() { d.fire(key, gen) })
	return true
}

// fire flushes the batch of key unless a later Add superseded gen. A timer
// that already fired when Stop was called lands here with a stale gen.
func (d *Debouncer[T]) fire(key int64, gen uint64) {
	d.mu.Lock()
	b, ok := d.pending[key]
	if !ok || b.gen != gen || d.closed {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	d.flush(key, b.items)
}

// Pending returns the number of keys with an unflushed batch.
func (d *Debouncer[T]) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Close stops all timers, flushes what is still buffered and waits for
// running flushes to return.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	left := d.pending
	d.pending = make(map[int64]*batch[T])
	for _, b := range left {
		b.timer.Stop()
	}
	d.mu.Unlock()

	for key, b := range left {
		d.flush(key, b.items)
	}
	d.wg.Wait()
}
