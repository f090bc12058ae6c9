// Package loop provides the single-threaded cooperative task loop that the
// runtime schedules every continuation on, and the one-shot Future type used
// to chain work onto lifecycle and render events.
//
// Tasks are posted from any goroutine but only ever run on the goroutine that
// calls Drain, Step or Run. Everything done synchronously between two drains
// is one "turn"; a continuation posted during a turn runs in a later tick.
package loop

import (
	"context"
	"sync"

	"github.com/eapache/queue"

	"github.com/go-drift/elements/pkg/errors"
)

// Loop is a FIFO task queue drained by a single goroutine.
type Loop struct {
	mu       sync.Mutex
	tasks    *queue.Queue
	draining bool
	wake     chan struct{}

	// OnNeedsTick is called when a task is posted to an empty queue,
	// signalling a host driver that the loop should be drained.
	OnNeedsTick func()
}

// New creates an empty Loop.
func New() *Loop {
	return &Loop{
		tasks: queue.New(),
		wake:  make(chan struct{}, 1),
	}
}

// Post schedules task to run in a later tick. Returns false if task is nil.
// Post is safe for concurrent use.
func (l *Loop) Post(task func()) bool {
	if task == nil {
		return false
	}
	l.mu.Lock()
	l.tasks.Add(task)
	first := l.tasks.Length() == 1
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	if first && l.OnNeedsTick != nil {
		l.OnNeedsTick()
	}
	return true
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tasks.Length()
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tasks.Length() == 0 {
		return nil, false
	}
	return l.tasks.Remove().(func()), true
}

// Step runs the oldest queued task. Returns false if the queue was empty.
func (l *Loop) Step() bool {
	task, ok := l.next()
	if !ok {
		return false
	}
	l.run(task)
	return true
}

func (l *Loop) run(task func()) {
	defer errors.Recover("loop.task")
	task()
}

// Drain runs tasks until the queue is empty, including tasks posted by the
// tasks it runs, and returns how many ran. A Drain called from inside a task
// returns 0 immediately so continuations never nest inside each other.
func (l *Loop) Drain() int {
	l.mu.Lock()
	if l.draining {
		l.mu.Unlock()
		return 0
	}
	l.draining = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.draining = false
		l.mu.Unlock()
	}()

	n := 0
	for l.Step() {
		n++
	}
	return n
}

// Run drains the loop whenever tasks are posted until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
