package hooks

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/elements/pkg/errors"
)

var (
	// ErrHookOrder is wrapped by the error a render pass fails with when its
	// hook calls do not line up with the slots recorded by earlier passes.
	ErrHookOrder = stderrors.New("hooks: call order changed between renders")

	// ErrReentrantLoad is returned when Load is called from inside a render.
	ErrReentrantLoad = stderrors.New("hooks: Load called during render")

	// ErrDisposed is returned by Load after terminal cleanup.
	ErrDisposed = stderrors.New("hooks: registry disposed")
)

type kind uint8

const (
	kindState kind = iota + 1
	kindRef
	kindMemo
	kindEffect
	kindController
)

func (k kind) String() string {
	switch k {
	case kindState:
		return "UseState"
	case kindRef:
		return "UseRef"
	case kindMemo:
		return "UseMemo"
	case kindEffect:
		return "UseEffect"
	case kindController:
		return "UseController"
	default:
		return "unknown"
	}
}

// slot is one unit of per-call-site state.
type slot struct {
	kind    kind
	value   any
	deps    []any
	effect  func() func()
	cleanup func()

	// pendingDeps are the deps of a queued effect. They replace deps only
	// once the effect is collected, so a failed pass re-queues it.
	pendingDeps []any
}

// Registry is the hook-slot arena of one element. Slots are indexed by the
// order hooks are called in during a render; every pass after the first
// successful one must call the same hooks in the same order.
//
// A Registry is not safe for concurrent use. It is driven from the loop
// goroutine only.
type Registry struct {
	host   any
	id     string
	name   string
	update func()

	slots     []*slot
	cursor    int
	loaded    bool
	rendering bool
	disposed  bool
	effects   []*slot
}

// New creates a registry for the element identified by id. update is
// called whenever hook state changes and a new render is needed.
func New(host any, id string, update func()) *Registry {
	return &Registry{host: host, id: id, update: update}
}

// SetName sets the component name used in render error messages.
func (r *Registry) SetName(name string) {
	r.name = name
}

// Len returns the number of allocated slots.
func (r *Registry) Len() int {
	return len(r.slots)
}

// Load runs render with hook slots available by call order. A panic inside
// render is recovered and returned as an *errors.RenderError. Effects
// declared by the pass are queued for the next CollectEffects call.
func (r *Registry) Load(render func(*Scope)) (err error) {
	if r.disposed {
		return ErrDisposed
	}
	if r.rendering {
		return ErrReentrantLoad
	}
	r.rendering = true
	r.cursor = 0
	r.effects = r.effects[:0]

	defer func() {
		r.rendering = false
		if err != nil {
			r.effects = r.effects[:0]
		}
	}()
	defer errors.RecoverRender(r.name, "render", &err)

	render(&Scope{r: r})

	if r.loaded && r.cursor != len(r.slots) {
		panic(fmt.Errorf("%w: rendered %d hooks, previous render had %d", ErrHookOrder, r.cursor, len(r.slots)))
	}
	r.loaded = true
	return nil
}

// use returns the slot for the next hook call, allocating it on the first
// render. fresh is true when the slot was just allocated.
func (r *Registry) use(k kind) (s *slot, fresh bool) {
	if !r.rendering {
		panic(fmt.Errorf("hooks: %s called outside of render", k))
	}
	i := r.cursor
	r.cursor++
	if i < len(r.slots) {
		s = r.slots[i]
		if s.kind != k {
			panic(fmt.Errorf("%w: slot %d was %s, now %s", ErrHookOrder, i, s.kind, k))
		}
		return s, false
	}
	if r.loaded {
		panic(fmt.Errorf("%w: slot %d (%s) did not exist in the previous render", ErrHookOrder, i, k))
	}
	s = &slot{kind: k}
	r.slots = append(r.slots, s)
	return s, true
}

// CollectEffects returns the callback that settles the effects of the last
// pass: for every effect whose dependencies changed, the cleanup left by the
// previous run is called and then the effect runs again. Cleanups therefore
// lag one pass behind the render that produced them.
//
// With terminal set, the returned callback instead runs every outstanding
// cleanup in reverse slot order and disposes the registry; no effect runs.
// The returned callback is never nil.
func (r *Registry) CollectEffects(terminal bool) func() {
	if terminal {
		return r.dispose
	}
	if len(r.effects) == 0 {
		return func() {}
	}
	pending := make([]*slot, len(r.effects))
	copy(pending, r.effects)
	r.effects = r.effects[:0]
	for _, s := range pending {
		s.deps = s.pendingDeps
		s.pendingDeps = nil
	}
	return func() {
		for _, s := range pending {
			if r.disposed {
				return
			}
			if s.cleanup != nil {
				cleanup := s.cleanup
				s.cleanup = nil
				cleanup()
			}
			s.cleanup = s.effect()
		}
	}
}

func (r *Registry) dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.effects = nil
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := r.slots[i]
		if s.cleanup != nil {
			cleanup := s.cleanup
			s.cleanup = nil
			cleanup()
		}
	}
}

// Disposed reports whether terminal cleanup has run.
func (r *Registry) Disposed() bool {
	return r.disposed
}

func (r *Registry) requestUpdate() {
	if r.disposed || r.update == nil {
		return
	}
	r.update()
}

// Scope is the handle a render function uses to call hooks.
type Scope struct {
	r *Registry
}

// Host returns the host object the element is bound to.
func (s *Scope) Host() any {
	return s.r.host
}

// ID returns the opaque identifier of the element.
func (s *Scope) ID() string {
	return s.r.id
}

// Update requests a new render pass.
func (s *Scope) Update() {
	s.r.requestUpdate()
}
