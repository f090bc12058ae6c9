package hooks

import "reflect"

// Once is the dependency list for an effect or memo that runs a single time
// for the lifetime of the element.
var Once = []any{}

// State holds a value in a hook slot and requests a render when it changes.
//
// State is NOT thread-safe. To update it from a background goroutine, post
// the write to the element's loop:
//
//	go func() {
//	    result := doExpensiveWork()
//	    el.Loop().Post(func() {
//	        count.Set(result) // Safe - runs on the loop goroutine
//	    })
//	}()
type State[T any] struct {
	r     *Registry
	value T
}

// Value returns the current value.
func (m *State[T]) Value() T {
	return m.value
}

// Set updates the value and requests a render.
func (m *State[T]) Set(value T) {
	m.value = value
	m.r.requestUpdate()
}

// Update applies a transformation to the current value and requests a render.
func (m *State[T]) Update(transform func(T) T) {
	m.value = transform(m.value)
	m.r.requestUpdate()
}

// UseState returns the State stored in the next slot, creating it with
// initial on the first render.
//
// Example:
//
//	func counter(s *hooks.Scope, p props.Values) element.Result {
//	    count := hooks.UseState(s, 0)
//	    return dom.Text(fmt.Sprintf("Count: %d", count.Value()))
//	}
func UseState[T any](s *Scope, initial T) *State[T] {
	sl, fresh := s.r.use(kindState)
	if fresh {
		sl.value = &State[T]{r: s.r, value: initial}
	}
	return sl.value.(*State[T])
}

// Ref is a mutable box that survives renders without triggering them.
type Ref[T any] struct {
	Current T
}

// UseRef returns the Ref stored in the next slot.
func UseRef[T any](s *Scope, initial T) *Ref[T] {
	sl, fresh := s.r.use(kindRef)
	if fresh {
		sl.value = &Ref[T]{Current: initial}
	}
	return sl.value.(*Ref[T])
}

// UseMemo returns the value computed by compute, recomputing it only when
// deps differ from the previous render. A nil deps recomputes every render.
func UseMemo[T any](s *Scope, compute func() T, deps []any) T {
	sl, fresh := s.r.use(kindMemo)
	if fresh || depsChanged(sl.deps, deps) {
		sl.value = compute()
		sl.deps = cloneDeps(deps)
	}
	return sl.value.(T)
}

// UseCallback returns fn as first passed, until deps change.
func UseCallback[F any](s *Scope, fn F, deps []any) F {
	return UseMemo(s, func() F { return fn }, deps)
}

// UseEffect schedules effect to run after the render is committed, when
// deps differ from the previous render. A nil deps runs the effect after
// every render; [Once] runs it after the first render only.
//
// The function returned by effect (which may be nil) is called before the
// effect runs again, or when the element is torn down.
func UseEffect(s *Scope, effect func() func(), deps []any) {
	sl, fresh := s.r.use(kindEffect)
	if fresh || deps == nil || depsChanged(sl.deps, deps) {
		sl.effect = effect
		sl.pendingDeps = cloneDeps(deps)
		s.r.effects = append(s.r.effects, sl)
	}
}

// Disposable is implemented by controllers that hold resources.
type Disposable interface {
	Dispose()
}

// UseController creates a controller on the first render and disposes it
// when the element is torn down.
//
// Example:
//
//	ticker := hooks.UseController(s, func() *Ticker {
//	    return NewTicker(time.Second)
//	})
func UseController[C Disposable](s *Scope, create func() C) C {
	sl, fresh := s.r.use(kindController)
	if fresh {
		controller := create()
		sl.value = controller
		sl.cleanup = controller.Dispose
	}
	return sl.value.(C)
}

// Listenable is anything that can notify listeners of changes.
type Listenable interface {
	AddListener(listener func()) func()
}

// UseListenable subscribes to listenable after the first commit and
// requests a render whenever it notifies. The subscription is removed on
// teardown.
func UseListenable(s *Scope, listenable Listenable) {
	r := s.r
	UseEffect(s, func() func() {
		return listenable.AddListener(r.requestUpdate)
	}, Once)
}

// UseObservable subscribes to obs and returns its current value. Renders
// are requested whenever the observable changes.
func UseObservable[T any](s *Scope, obs *Observable[T]) T {
	r := s.r
	UseEffect(s, func() func() {
		return obs.AddListener(func(T) { r.requestUpdate() })
	}, []any{obs})
	return obs.Value()
}

// UseHost returns the host object the element is bound to.
func UseHost(s *Scope) any {
	return s.r.host
}

// UseID returns the opaque identifier of the element.
func UseID(s *Scope) string {
	return s.r.id
}

// UseUpdate returns a function that requests a new render pass.
func UseUpdate(s *Scope) func() {
	return s.r.requestUpdate
}

func depsChanged(prev, next []any) bool {
	if prev == nil || next == nil {
		return true
	}
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if !reflect.DeepEqual(prev[i], next[i]) {
			return true
		}
	}
	return false
}

func cloneDeps(deps []any) []any {
	if deps == nil {
		return nil
	}
	return append([]any{}, deps...)
}
