package loop

import (
	"context"
	"sync"
)

// Future is a one-shot completion value. It resolves exactly once, with a
// nil error on success; later Resolve calls are no-ops. Continuations
// registered with Then always run as loop tasks, never inline.
type Future struct {
	loop      *Loop
	mu        sync.Mutex
	settled   bool
	err       error
	callbacks []func(error)
	done      chan struct{}
}

// NewFuture creates an unresolved future whose continuations run on l.
func NewFuture(l *Loop) *Future {
	return &Future{loop: l, done: make(chan struct{})}
}

// Resolved creates a future already resolved with err.
func Resolved(l *Loop, err error) *Future {
	f := NewFuture(l)
	f.Resolve(err)
	return f
}

// Loop returns the loop the future's continuations run on.
func (f *Future) Loop() *Loop {
	return f.loop
}

// Resolve settles the future with err and posts every registered
// continuation. Returns false if the future had already settled.
func (f *Future) Resolve(err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		f.loop.Post(func() { cb(err) })
	}
	return true
}

// Then registers fn to run in a later tick once the future settles. fn
// receives the settled error. If the future has already settled, fn is
// posted immediately.
func (f *Future) Then(fn func(err error)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	if !f.settled {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	err := f.err
	f.mu.Unlock()
	f.loop.Post(func() { fn(err) })
}

// Settled reports whether the future has resolved.
func (f *Future) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

// Err returns the settled error, or nil while unresolved.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Done returns a channel closed when the future resolves.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx ends. It must not be called
// from the goroutine driving the loop, since that goroutine is the one that
// would resolve it.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
