package element

import (
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/go-drift/elements/pkg/hooks"
	"github.com/go-drift/elements/pkg/props"
)

// RenderFunc describes what to render given the element's hook scope and a
// frozen copy of its current props. A nil result commits nothing.
type RenderFunc func(s *hooks.Scope, p props.Values) Result

// Component is the immutable definition a class is built from.
type Component struct {
	// Name identifies the component in errors and logs.
	Name string
	// Render is called once per render pass.
	Render RenderFunc
	// Props declares the component's own properties.
	Props props.Schema
	// Styles are applied once, after the first render.
	Styles []Style
}

// Declaration is one row of a class's attribute declaration table.
type Declaration struct {
	// Attr is the observed attribute name.
	Attr string
	// Prop is the target property name.
	Prop string
	// Type drives coercion of attribute values.
	Type props.Type
	// Reflect writes property changes back to the attribute.
	Reflect bool
}

// BaseFactory creates the base behavior an element composes. It runs once
// the element is set up and its defaults are applied, so ID and Props are
// already available. The returned value may implement ConnectedCallback,
// DisconnectedCallback and AttributeChangedCallback.
type BaseFactory func(e *Element) any

// Class is a defined component type. Elements are created from it with New.
// A class may extend another class, inheriting its properties, styles,
// observed attributes and attribute handling.
type Class struct {
	def          Component
	parent       *Class
	base         BaseFactory
	baseObserved []string

	once     sync.Once
	builds   int
	attrs    map[string]Declaration
	observed []string
}

// Option configures a class at definition time.
type Option func(*Class)

// Extends makes the class extend parent. The parent's base behavior is
// inherited unless WithBase is also given.
func Extends(parent *Class) Option {
	return func(c *Class) {
		c.parent = parent
	}
}

// WithBase composes the behavior built by factory into every element of the
// class. observed lists the attributes that behavior handles; they are
// appended to the class's observed attributes.
func WithBase(factory BaseFactory, observed ...string) Option {
	return func(c *Class) {
		c.base = factory
		c.baseObserved = observed
	}
}

// Define creates a class from def.
func Define(def Component, opts ...Option) (*Class, error) {
	if def.Render == nil {
		return nil, stderrors.New("element: component has no render function")
	}
	if err := def.Props.Validate(); err != nil {
		return nil, fmt.Errorf("element: component %s: %w", def.Name, err)
	}
	c := &Class{def: def}
	for _, opt := range opts {
		opt(c)
	}
	if c.base == nil && c.parent != nil {
		c.base = c.parent.base
	}
	return c, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(def Component, opts ...Option) *Class {
	c, err := Define(def, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the component name.
func (c *Class) Name() string {
	return c.def.Name
}

// Extends returns the class this class extends, or nil.
func (c *Class) Extends() *Class {
	return c.parent
}

// Props returns the merged property schema: the parent's schema overlaid
// with this class's own declarations.
func (c *Class) Props() props.Schema {
	if c.parent == nil {
		return props.Schema{}.Merge(c.def.Props)
	}
	return c.parent.Props().Merge(c.def.Props)
}

// Styles returns the parent's styles followed by this class's own, with
// empty entries dropped.
func (c *Class) Styles() []Style {
	var out []Style
	if c.parent != nil {
		out = c.parent.Styles()
	}
	for _, s := range c.def.Styles {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ObservedAttributes returns the attribute names the host environment
// should report changes for: this class's declared attributes followed by
// the ones contributed by the parent class (or base behavior) that are not
// already listed. The table behind it is built once per class.
func (c *Class) ObservedAttributes() []string {
	c.table()
	return slices.Clone(c.observed)
}

// Declaration looks up attr in this class's table, then in its ancestors'.
func (c *Class) Declaration(attr string) (Declaration, bool) {
	c.table()
	if d, ok := c.attrs[attr]; ok {
		return d, true
	}
	if c.parent != nil {
		return c.parent.Declaration(attr)
	}
	return Declaration{}, false
}

// table builds the declaration table. The parent's table is built first,
// through its own once, so a class is never built re-entrantly.
func (c *Class) table() {
	c.once.Do(func() {
		c.builds++
		var inherited []string
		if c.parent != nil {
			inherited = c.parent.ObservedAttributes()
		}
		inherited = append(inherited, c.baseObserved...)

		c.attrs = make(map[string]Declaration, len(c.def.Props))
		names := c.def.Props.Names()
		for _, name := range names {
			p := c.def.Props[name]
			attr := p.AttrName(name)
			c.attrs[attr] = Declaration{Attr: attr, Prop: name, Type: p.Type, Reflect: p.Reflect}
			c.observed = append(c.observed, attr)
		}
		for _, attr := range inherited {
			if !slices.Contains(c.observed, attr) {
				c.observed = append(c.observed, attr)
			}
		}
	})
}

// chain returns the class hierarchy from the root class down to c.
func (c *Class) chain() []*Class {
	var out []*Class
	for cur := c; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	slices.Reverse(out)
	return out
}

// prop returns the declaration of a property from the merged schema.
func (c *Class) prop(name string) (props.Prop, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if p, ok := cur.def.Props[name]; ok {
			return p, true
		}
	}
	return props.Prop{}, false
}

// attributeChanged handles a mutation notification for e at this level of
// the hierarchy, passing undeclared names up to the parent class and then
// to the base behavior.
func (c *Class) attributeChanged(e *Element, name string, oldValue, newValue *string) {
	c.table()
	if d, ok := c.attrs[name]; ok {
		e.applyAttribute(d, oldValue, newValue)
		return
	}
	if c.parent != nil {
		c.parent.attributeChanged(e, name, oldValue, newValue)
		return
	}
	if h, ok := e.base.(AttributeChangedCallback); ok {
		h.AttributeChanged(name, oldValue, newValue)
	}
}

// cloneDefault copies container defaults so elements never share them.
func cloneDefault(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return maps.Clone(t)
	case []any:
		return slices.Clone(t)
	default:
		return v
	}
}
