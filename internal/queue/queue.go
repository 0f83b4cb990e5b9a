// Package queue provides an unbounded, closable FIFO that many goroutines can
// enqueue into without blocking while consumers wait with a bounded timeout.
//
// Enqueue never blocks and never fails while the queue is open, so memory grows
// without limit if consumers fall behind. Callers that need backpressure must
// build it on top.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Common errors returned by Queue
var (
	ErrQueueClosed = errors.New("queue is closed")
	ErrTimeout     = errors.New("queue wait timed out")
)

// Queue is an unbounded FIFO. Items are handed out in the order Enqueue
// acquired the lock, which is arrival order across all producers.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	closed bool

	// notify holds at most one pending wake-up for waiting consumers
	notify chan struct{}

	// done is closed by Close so waiters observe shutdown immediately
	done chan struct{}
}

// New creates an empty, open queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Enqueue appends an item to the tail of the queue.
// Returns ErrQueueClosed once Close has been called.
func (q *Queue[T]) Enqueue(item T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.wake()
	return nil
}

// TryDequeue removes and returns the head item without waiting.
func (q *Queue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head == len(q.items) {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	switch {
	case q.head == len(q.items):
		// Drained: reuse the backing array from the start
		q.items = q.items[:0]
		q.head = 0
	case q.head > 64 && q.head*2 >= len(q.items):
		// Compact once the consumed prefix dominates the slice
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
		q.wake()
	default:
		// Items remain, pass the wake-up on to another waiter
		q.wake()
	}

	return item, true
}

// Dequeue waits until an item is available, the queue is closed and drained,
// or ctx is done.
func (q *Queue[T]) Dequeue(ctx context.Context) (T, error) {
	return q.dequeue(ctx, nil)
}

// DequeueWithin behaves like Dequeue but gives up with ErrTimeout after d.
func (q *Queue[T]) DequeueWithin(ctx context.Context, d time.Duration) (T, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	return q.dequeue(ctx, timer.C)
}

// DequeueUntil behaves like Dequeue but gives up with ErrTimeout when timeout
// fires. Loops that wait repeatedly can pass one reusable timer's channel.
func (q *Queue[T]) DequeueUntil(ctx context.Context, timeout <-chan time.Time) (T, error) {
	return q.dequeue(ctx, timeout)
}

func (q *Queue[T]) dequeue(ctx context.Context, timeout <-chan time.Time) (T, error) {
	var zero T
	for {
		if item, ok := q.TryDequeue(); ok {
			return item, nil
		}
		if q.Closed() {
			// Re-check under the closed state so nothing enqueued before Close is lost
			if item, ok := q.TryDequeue(); ok {
				return item, nil
			}
			return zero, ErrQueueClosed
		}

		select {
		case <-q.notify:
		case <-q.done:
		case <-timeout:
			return zero, ErrTimeout
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Close stops the queue from accepting new items. Items already queued can
// still be dequeued. Close is idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *Queue[T]) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
