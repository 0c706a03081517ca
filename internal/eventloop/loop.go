// Package eventloop runs continuations one at a time on a single goroutine,
// the way a UI thread would. Anything that mutates UI state is posted here.
package eventloop

import (
	"context"
	"sync"
)

// Loop is a FIFO queue of continuations executed by whoever calls Run or Drain.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wakeup chan struct{}
}

// New returns an idle loop.
func New() *Loop {
	return &Loop{wakeup: make(chan struct{}, 1)}
}

// Post enqueues fn. It never blocks and is safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wakeup <- struct{}{}:
	default:
	}
}

// Run executes posted continuations until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wakeup:
		}
	}
}

// Wake fires after Post. Hosts that own their own event loop (bubbletea) wait
// on it and call Drain instead of Run; do not mix the two.
func (l *Loop) Wake() <-chan struct{} {
	return l.wakeup
}

// Drain runs every queued continuation, including ones posted while draining,
// and returns how many ran.
func (l *Loop) Drain() int {
	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return ran
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
		ran++
	}
}

// Len reports how many continuations are waiting.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}
