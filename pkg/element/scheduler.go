package element

import (
	"time"

	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/hooks"
	"github.com/go-drift/elements/pkg/loop"
)

// Update requests a render pass and returns its future. Requests made
// before the pass starts share one pass. Passes run one at a time in the
// order they were admitted, the first one only after the element is
// attached. The future resolves after the pass has committed and, on the
// following tick, its effects have been settled; it resolves with the
// error if render or commit failed.
func (e *Element) Update() *loop.Future {
	if e.closed {
		return loop.Resolved(e.loop, ErrUnmounted)
	}
	if e.pending != nil {
		return e.pending
	}

	next := loop.NewFuture(e.loop)
	e.pending = next
	prev := e.updated
	if prev == nil {
		prev = e.gate.Attached.Future()
	}
	e.updated = next

	// A failed pass settles its future too, so the chain keeps moving.
	prev.Then(func(error) { e.runPass(next) })
	return next
}

func (e *Element) runPass(f *loop.Future) {
	settle, err := e.pass(f)
	if err != nil {
		f.Resolve(err)
		return
	}
	e.loop.Post(func() {
		var err error
		func() {
			defer errors.RecoverRender(e.class.Name(), "effects", &err)
			settle()
		}()
		f.Resolve(err)
	})
}

// pass renders with the hook registry, commits the result and returns the
// callback that settles the pass's effects.
func (e *Element) pass(f *loop.Future) (settle func(), err error) {
	// Releasing the pending mark first lets requests made while this pass
	// runs admit exactly one more pass, and leaves the element schedulable
	// whatever happens below.
	if e.pending == f {
		e.pending = nil
	}

	defer errors.RecoverRender(e.class.Name(), "commit", &err)

	var result Result
	render := e.class.def.Render
	snapshot := e.props.Snapshot()
	if err := e.hooks.Load(func(s *hooks.Scope) { result = render(s, snapshot) }); err != nil {
		return nil, err
	}

	if result != nil {
		if err := result.Render(e.host, e.id, e.hydrate); err != nil {
			return nil, &errors.RenderError{
				Component: e.class.Name(),
				Phase:     "commit",
				Err:       err,
				Timestamp: time.Now(),
			}
		}
	}

	if !e.rendered {
		e.rendered = true
		if !e.hydrate {
			applyStyles(e.host, e.class.Styles())
		}
	}
	e.log.Debug("render pass committed")
	return e.hooks.CollectEffects(false), nil
}
