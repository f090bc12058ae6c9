package element

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/hooks"
	"github.com/go-drift/elements/pkg/log"
	"github.com/go-drift/elements/pkg/loop"
	"github.com/go-drift/elements/pkg/props"
)

// ErrUnmounted is the error of update futures requested after an element
// has been torn down.
var ErrUnmounted = stderrors.New("element: unmounted")

// Element is one live instance of a class bound to a host.
//
// Element is NOT thread-safe. Every method must be called from the
// goroutine driving its loop; other goroutines post work with Loop().Post.
type Element struct {
	class *Class
	host  Host
	base  any
	loop  *loop.Loop
	log   *zap.Logger

	props   props.Values
	id      string
	gate    Gate
	hooks   *hooks.Registry
	hydrate bool

	pending  *loop.Future
	updated  *loop.Future
	rendered bool
	closed   bool

	reflecting string
}

// New creates an element of class c bound to host, with continuations
// scheduled on l. The first render pass is requested immediately and runs
// once the element is connected.
func (c *Class) New(l *loop.Loop, host Host) *Element {
	c.table()
	e := &Element{class: c, host: host, loop: l}
	// Each level of the hierarchy initializes the element the way a
	// constructor chain would; only the first call does any work.
	for range c.chain() {
		e.setup()
	}
	schema := c.Props()
	for _, name := range schema.Names() {
		p := schema[name]
		if p.Value == nil {
			continue
		}
		if err := e.Set(name, cloneDefault(p.Value)); err != nil {
			errors.Report(&errors.ElementError{
				Op:      "element.New",
				Kind:    errors.KindSchema,
				Element: e.id,
				Err:     err,
			})
		}
	}
	if c.base != nil {
		e.base = c.base(e)
	}
	return e
}

// setup initializes the props store, the lifecycle gate, the identifier and
// the hook registry, requests the first update, and arranges terminal
// cleanup for when detachment is confirmed. It is a no-op once the props
// store exists.
func (e *Element) setup() {
	if e.props != nil {
		return
	}
	e.props = props.Values{}
	e.gate.Arm(e.loop)
	if e.id == "" {
		e.id = uuid.New().String()
	}
	e.log = log.Logger().With(zap.String("component", e.class.Name()), zap.String("element", e.id))
	_, e.hydrate = e.host.Attribute(HydrateAttribute)

	e.hooks = hooks.New(e.host, e.id, func() { e.Update() })
	e.hooks.SetName(e.class.Name())

	e.Update()
	e.gate.Detached.Future().Then(func(error) { e.teardown() })
	e.log.Debug("element setup")
}

// teardown closes the scheduler, waits for the last admitted pass to
// settle, then runs every outstanding hook cleanup.
func (e *Element) teardown() {
	e.closed = true
	e.log.Debug("element unmounted")
	finish := func(error) {
		e.hooks.CollectEffects(true)()
		e.log.Debug("terminal cleanup done")
	}
	if e.updated == nil {
		finish(nil)
		return
	}
	e.updated.Then(finish)
}

// Connected must be called by the host environment each time the host is
// inserted into a live tree.
func (e *Element) Connected() {
	if e.gate.Attached.Fire() {
		e.log.Debug("element mounted")
	}
	if cb, ok := e.base.(ConnectedCallback); ok {
		cb.Connected()
	}
}

// Disconnected must be called by the host environment each time the host is
// removed from a live tree. Detachment is only confirmed once the element
// has been attached and the host is still outside the tree when the check
// runs, so a move (remove followed by insert) never tears the element down.
func (e *Element) Disconnected() {
	if cb, ok := e.base.(DisconnectedCallback); ok {
		cb.Disconnected()
	}
	e.gate.Attached.Future().Then(func(error) {
		if e.host.IsConnected() {
			e.log.Debug("detach ignored, host reconnected")
			return
		}
		e.gate.Detached.Fire()
	})
}

// AttributeChanged must be called by the host environment when an observed
// attribute changes. A nil value means the attribute is absent.
func (e *Element) AttributeChanged(name string, oldValue, newValue *string) {
	e.class.attributeChanged(e, name, oldValue, newValue)
}

// ObservedAttributes returns the attribute names of the element's class.
func (e *Element) ObservedAttributes() []string {
	return e.class.ObservedAttributes()
}

func (e *Element) applyAttribute(d Declaration, oldValue, newValue *string) {
	if d.Attr == e.reflecting || props.EqualAttr(oldValue, newValue) {
		return
	}
	value, err := props.Coerce(d.Type, newValue)
	if err != nil {
		raw := ""
		if newValue != nil {
			raw = *newValue
		}
		errors.Report(&errors.ElementError{
			Op:      "element.AttributeChanged",
			Kind:    errors.KindAttribute,
			Element: e.id,
			Err:     &errors.CoerceError{Attr: d.Attr, Type: d.Type.String(), Value: raw, Err: err},
		})
		return
	}
	if err := e.Set(d.Prop, value); err != nil {
		errors.Report(&errors.ElementError{
			Op:      "element.AttributeChanged",
			Kind:    errors.KindAttribute,
			Element: e.id,
			Err:     err,
		})
	}
}

// Get returns the current value of a property.
func (e *Element) Get(name string) any {
	return e.props[name]
}

// Set assigns a property. Declared properties are checked against their
// type. A change requests an update, and reflecting properties are written
// back to their attribute once that update has settled.
func (e *Element) Set(name string, value any) error {
	decl, declared := e.class.prop(name)
	if declared {
		v, err := props.Normalize(decl.Type, value)
		if err != nil {
			return fmt.Errorf("prop %s: %w", name, err)
		}
		value = v
	}
	if old, ok := e.props[name]; ok && reflect.DeepEqual(old, value) {
		return nil
	}
	e.props[name] = value
	updated := e.Update()
	if declared && decl.Reflect {
		updated.Then(func(error) { e.reflect(name, decl) })
	}
	return nil
}

// reflect writes the current value of a property to its attribute. The
// mutation notification the host sends back for it is ignored.
func (e *Element) reflect(name string, decl props.Prop) {
	if e.closed {
		return
	}
	attr := decl.AttrName(name)
	value, err := props.Format(decl.Type, e.props[name])
	if err != nil {
		errors.Report(&errors.ElementError{
			Op:      "element.reflect",
			Kind:    errors.KindAttribute,
			Element: e.id,
			Err:     err,
		})
		return
	}

	e.reflecting = attr
	defer func() { e.reflecting = "" }()
	if value == nil {
		e.host.RemoveAttribute(attr)
		return
	}
	e.host.SetAttribute(attr, *value)
}

// Props returns a copy of the props store.
func (e *Element) Props() props.Values {
	return e.props.Snapshot()
}

// ID returns the element's opaque identifier.
func (e *Element) ID() string {
	return e.id
}

// Host returns the host the element is bound to.
func (e *Element) Host() Host {
	return e.host
}

// Base returns the composed base behavior, or nil.
func (e *Element) Base() any {
	return e.base
}

// Class returns the element's class.
func (e *Element) Class() *Class {
	return e.class
}

// Loop returns the loop the element schedules work on.
func (e *Element) Loop() *loop.Loop {
	return e.loop
}

// Mounted resolves when the element is first attached.
func (e *Element) Mounted() *loop.Future {
	return e.gate.Attached.Future()
}

// Unmounted resolves when detachment is confirmed.
func (e *Element) Unmounted() *loop.Future {
	return e.gate.Detached.Future()
}

// Updated returns the future of the most recently admitted render pass.
func (e *Element) Updated() *loop.Future {
	return e.updated
}
