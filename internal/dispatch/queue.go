// Package dispatch provides the ordered action queue and the single consumer
// loop that applies actions to application state.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"sreader/internal/action"
)

// ErrQueueClosed is returned by Push and Pop after Close. Producers treat it
// as a shutdown signal and drop the action.
var ErrQueueClosed = errors.New("dispatch: queue closed")

// Queue is an unbounded FIFO with many producers and one consumer.
type Queue struct {
	mu     sync.Mutex
	items  []action.Action
	closed bool
	ready  chan struct{} // signalled after a push; capacity 1
	done   chan struct{}
}

// NewQueue creates an empty open queue.
func NewQueue() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Push appends actions in order. All of them become visible to the consumer
// together, so a multi-action push is never interleaved with another
// producer's actions.
func (q *Queue) Push(actions ...action.Action) error {
	if len(actions) == 0 {
		return nil
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.items = append(q.items, actions...)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return nil
}

// Pop blocks until an action is available, the context ends or the queue is
// closed.
func (q *Queue) Pop(ctx context.Context) (action.Action, error) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return nil, ErrQueueClosed
		}
		if len(q.items) > 0 {
			a := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return a, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.done:
			return nil, ErrQueueClosed
		case <-q.ready:
		}
	}
}

// Close discards pending actions and rejects further pushes. It is safe to
// call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	close(q.done)
}

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}
