package browser

import (
	"context"
	"sync"
)

// Scheduler serialises continuations. Post reports false when the task was
// rejected and will never run.
type Scheduler interface {
	Post(task func()) bool
}

// Loop is a single-goroutine Scheduler. Tasks accepted before Run returns are
// always executed, in the order they were posted.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

func (l *Loop) Post(task func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run executes posted tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		for task := l.next(); task != nil; task = l.next() {
			task()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task
}

func (l *Loop) stop() {
	l.mu.Lock()
	l.stopped = true
	rest := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, task := range rest {
		task()
	}
}
