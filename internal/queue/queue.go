// Package queue implements an unbounded FIFO of byte payloads, safe for
// concurrent producers and consumers.
//
// Payloads come out in exactly the order they went in; the transport
// relies on that order matching wire order. The queue imposes no
// backpressure: Push always succeeds immediately.
package queue

import (
	"sync"
	"time"
)

// Queue is an unbounded thread-safe FIFO of byte slices.
// The zero value is not usable; call New.
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items [][]byte
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends payload to the tail and wakes any waiting consumer.
// It never blocks.
func (q *Queue) Push(payload []byte) {
	q.mu.Lock()
	q.items = append(q.items, payload)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// TryPop removes and returns the head payload without blocking.
// The second return value is false when the queue is empty.
func (q *Queue) TryPop() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// PopWait removes and returns the head payload, waiting up to d for one
// to arrive. It returns false if the queue is still empty at the
// deadline.
func (q *Queue) PopWait(d time.Duration) ([]byte, bool) {
	deadline := time.Now().Add(d)

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false
		}
		// Wake ourselves at the deadline; Wait releases the lock.
		t := time.AfterFunc(remaining, q.cond.Broadcast)
		q.cond.Wait()
		t.Stop()
	}
	return q.popLocked()
}

// Len returns the number of queued payloads.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) popLocked() ([]byte, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	head := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return head, true
}
