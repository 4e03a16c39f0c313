package input

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrQueueClosed is returned for work submitted after Close.
var ErrQueueClosed = errors.New("command queue closed")

type job struct {
	run  func() error
	done chan error
}

// Queue is a serial command chain for one document. Jobs run one at a time on a
// dedicated goroutine in submission order, so an operation that waits on the clipboard
// can never interleave its buffer mutation with another one.
type Queue struct {
	mu      sync.Mutex
	pending []job
	wake    chan struct{}
	closed  bool
	stopped chan struct{}
}

// NewQueue starts a queue.
func NewQueue() *Queue {
	q := &Queue{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go q.loop()
	return q
}

// Submit appends fn to the chain. The returned channel yields fn's error once it ran,
// or ErrQueueClosed.
func (q *Queue) Submit(fn func() error) <-chan error {
	done := make(chan error, 1)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		done <- ErrQueueClosed
		return done
	}
	q.pending = append(q.pending, job{run: fn, done: done})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return done
}

// Do submits fn and waits for it. If ctx ends first, fn still runs in its turn.
func (q *Queue) Do(ctx context.Context, fn func() error) error {
	done := q.Submit(fn)
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("waiting for command: %w", ctx.Err())
	}
}

// Close stops accepting work, runs what is already queued, and waits for it.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.stopped
		return
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.stopped
}

func (q *Queue) loop() {
	defer close(q.stopped)
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		next := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		next.done <- next.run()
	}
}
