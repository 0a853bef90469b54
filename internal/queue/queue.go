// Package queue provides an unbounded FIFO whose producers never block.
package queue

import "sync"

// Queue hands items from any number of producers to one consumer. Push never
// blocks; items wait in memory until the consumer takes them.
//
// Usage:
//
//	q := queue.New[string]()
//	go q.Drain(func(line string) { fmt.Fprintln(w, line) })
//	q.Push("a") // never blocks
//	q.Close()   // Drain returns once "a" was handled
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

// New creates an empty Queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{items: make([]T, 0, 64)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends item. Items pushed after Close are dropped.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, item)
	q.cond.Signal()
}

// Pop removes the oldest item, blocking while the queue is empty and open.
// Returns false once the queue is closed and empty.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Drain calls fn for every item in order until the queue is closed and
// empty.
func (q *Queue[T]) Drain(fn func(T)) {
	for {
		item, ok := q.Pop()
		if !ok {
			return
		}
		fn(item)
	}
}

// Close stops accepting items. Queued items are still handed out. Safe to
// call more than once.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
