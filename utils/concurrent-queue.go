package utils

import (
	"context"
	"sync"
)

// ConcurrentQueue is an unbounded FIFO. Enqueue never blocks, Dequeue waits for an item.
type ConcurrentQueue[T any] struct {
	items []T
	lock  sync.Mutex
	// Cond is used to pause multiple goroutines and wait
	cond *sync.Cond
}

func NewConcurrentQueue[T any]() *ConcurrentQueue[T] {
	q := &ConcurrentQueue[T]{}
	q.cond = sync.NewCond(&q.lock)
	return q
}

// Put the item in the queue
func (q *ConcurrentQueue[T]) Enqueue(item T) {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.items = append(q.items, item)
	q.cond.Signal()
}

// Dequeue blocks until an item is available or ctx is done. The second return value is false
// only when ctx ended before an item arrived.
func (q *ConcurrentQueue[T]) Dequeue(ctx context.Context) (T, bool) {
	stop := context.AfterFunc(ctx, func() {
		q.lock.Lock()
		defer q.lock.Unlock()
		q.cond.Broadcast()
	})
	defer stop()

	q.lock.Lock()
	defer q.lock.Unlock()
	for len(q.items) == 0 {
		if ctx.Err() != nil {
			var zero T
			return zero, false
		}
		q.cond.Wait()
	}
	item := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

func (q *ConcurrentQueue[T]) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items)
}

func (q *ConcurrentQueue[T]) IsEmpty() bool {
	return q.Len() == 0
}
