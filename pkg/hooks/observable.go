package hooks

import (
	"reflect"
	"slices"
	"sync"
)

// Observable holds a value and notifies listeners when it changes.
// Observable is safe for concurrent use; listeners run on the goroutine
// that called Set.
type Observable[T any] struct {
	mu        sync.RWMutex
	value     T
	equal     func(a, b T) bool
	listeners map[int]func(T)
	nextID    int
}

// NewObservable creates an observable that compares values with
// reflect.DeepEqual.
func NewObservable[T any](initial T) *Observable[T] {
	return NewObservableWithEquality(initial, func(a, b T) bool {
		return reflect.DeepEqual(a, b)
	})
}

// NewObservableWithEquality creates an observable that only notifies when
// equal reports the new value differs from the current one. A nil equal
// notifies on every Set.
func NewObservableWithEquality[T any](initial T, equal func(a, b T) bool) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		equal:     equal,
		listeners: make(map[int]func(T)),
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set stores value and notifies listeners if it changed.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	if o.equal != nil && o.equal(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	ids := make([]int, 0, len(o.listeners))
	for id := range o.listeners {
		ids = append(ids, id)
	}
	listeners := make([]func(T), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, o.listeners[id])
	}
	o.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// AddListener registers listener and returns a function that removes it.
func (o *Observable[T]) AddListener(listener func(T)) func() {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = listener
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.listeners)
}

// Notifier is a Listenable with no value.
type Notifier struct {
	obs *Observable[int]
}

// NewNotifier creates a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{obs: NewObservableWithEquality[int](0, nil)}
}

// AddListener registers listener and returns a function that removes it.
func (n *Notifier) AddListener(listener func()) func() {
	return n.obs.AddListener(func(int) { listener() })
}

// Notify calls every listener.
func (n *Notifier) Notify() {
	n.obs.Set(0)
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	return n.obs.ListenerCount()
}
