package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueClosed is returned by [Queue.Submit] after [Queue.Close].
var ErrQueueClosed = errors.New("engine: queue closed")

// Queue drains transcript fragments into an [Engine] strictly in arrival
// order. Upstream recognizers can deliver fragments faster than the editor
// thread applies them; the queue absorbs the burst without ever reordering
// or dropping — a later fragment's spacing decisions depend on the text
// left by earlier ones.
//
// A single worker goroutine owns the engine while the queue runs, which is
// what makes the engine's read-then-replace sequence atomic with respect
// to fragment arrivals.
type Queue struct {
	engine *Engine

	mu        sync.Mutex
	fragments chan string
	closed    bool
	done      chan struct{}
}

// NewQueue returns a queue feeding e, buffering up to size fragments.
// Call [Queue.Start] to begin draining.
func NewQueue(e *Engine, size int) *Queue {
	return &Queue{
		engine:    e,
		fragments: make(chan string, size),
		done:      make(chan struct{}),
	}
}

// Start launches the single drain worker. The worker runs until the queue
// is closed and emptied, or ctx is cancelled. Start must be called exactly
// once.
func (q *Queue) Start(ctx context.Context) {
	go func() {
		defer close(q.done)
		for {
			select {
			case fragment, ok := <-q.fragments:
				if !ok {
					return
				}
				if err := q.engine.Apply(ctx, fragment); err != nil {
					slog.Error("fragment failed", "fragment", fragment, "err", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Submit enqueues one fragment. It blocks when the buffer is full rather
// than dropping — delivery order is part of the correctness contract.
// Submit and [Queue.Close] must be called from the same producer
// goroutine.
func (q *Queue) Submit(fragment string) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.mu.Unlock()
	q.fragments <- fragment
	return nil
}

// Close stops accepting fragments. Already-queued fragments still drain;
// use [Queue.Wait] to block until they have.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.fragments)
	}
}

// Wait blocks until the drain worker has exited.
func (q *Queue) Wait() {
	<-q.done
}

// Check reports whether the drain worker is still running. It matches the
// readiness probe signature used by the health endpoint.
func (q *Queue) Check(context.Context) error {
	select {
	case <-q.done:
		return errors.New("engine: fragment worker stopped")
	default:
		return nil
	}
}
