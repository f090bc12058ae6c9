package manifest

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/errors"
	"github.com/go-drift/elements/pkg/props"
)

// ErrCycle is returned when components extend each other in a loop.
var ErrCycle = stderrors.New("manifest: extends cycle")

// Manifest is a set of component definitions read from YAML.
type Manifest struct {
	Components []Component `yaml:"components"`
}

// Component is one manifest entry.
type Component struct {
	// Name identifies the component and is what extends refers to.
	Name string `yaml:"name"`
	// Tag is the element name; defaults to prefix-name when empty.
	Tag string `yaml:"tag,omitempty"`
	// Extends names the parent component.
	Extends string `yaml:"extends,omitempty"`
	// Version is an optional semantic version such as v1.2.0.
	Version string `yaml:"version,omitempty"`
	// Props is the component's own property schema.
	Props props.Schema `yaml:"props,omitempty"`
	// Styles are adopted by the host after the first render.
	Styles []string `yaml:"styles,omitempty"`
	// Template is rendered as the element's text; {{prop}} placeholders
	// are replaced by property values.
	Template string `yaml:"template,omitempty"`
}

// Parse decodes a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, manifestError("manifest.Parse", "", fmt.Errorf("failed to parse manifest: %w", err))
	}
	return &m, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, manifestError("manifest.Load", "", fmt.Errorf("failed to read manifest: %w", err))
	}
	return Parse(data)
}

// TagFor returns the element name of c under prefix.
func (c Component) TagFor(prefix string) string {
	if c.Tag != "" {
		return c.Tag
	}
	name := props.AttrName(c.Name)
	if prefix == "" || strings.HasPrefix(name, prefix+"-") {
		return name
	}
	return prefix + "-" + name
}

// Validate checks names, versions, tags, templates and the extends graph.
func (m *Manifest) Validate(prefix string) error {
	seen := make(map[string]bool, len(m.Components))
	tags := make(map[string]bool, len(m.Components))
	for _, c := range m.Components {
		if c.Name == "" {
			return manifestError("manifest.Validate", "", stderrors.New("component without a name"))
		}
		if seen[c.Name] {
			return manifestError("manifest.Validate", c.Name, stderrors.New("duplicate component name"))
		}
		seen[c.Name] = true

		tag := c.TagFor(prefix)
		if err := element.ValidateTag(tag); err != nil {
			return manifestError("manifest.Validate", c.Name, err)
		}
		if tags[tag] {
			return manifestError("manifest.Validate", c.Name, fmt.Errorf("duplicate tag %q", tag))
		}
		tags[tag] = true

		if c.Version != "" && !semver.IsValid(c.Version) {
			return manifestError("manifest.Validate", c.Name, fmt.Errorf("invalid version %q", c.Version))
		}
		if err := c.Props.Validate(); err != nil {
			return manifestError("manifest.Validate", c.Name, err)
		}
	}
	if _, err := m.order(); err != nil {
		return err
	}
	for _, c := range m.Components {
		schema := m.schema(c)
		tmpl, err := ParseTemplate(c.Template)
		if err != nil {
			return manifestError("manifest.Validate", c.Name, err)
		}
		for _, name := range tmpl.Names() {
			if _, ok := schema[name]; !ok {
				return manifestError("manifest.Validate", c.Name, fmt.Errorf("template references undeclared prop %q", name))
			}
		}
	}
	return nil
}

// Define validates the manifest, builds a class per component (parents
// before children) and registers each under its tag. It returns the
// classes by component name.
func (m *Manifest) Define(reg *element.Registry, prefix string) (map[string]*element.Class, error) {
	if err := m.Validate(prefix); err != nil {
		return nil, err
	}
	order, err := m.order()
	if err != nil {
		return nil, err
	}

	classes := make(map[string]*element.Class, len(order))
	for _, c := range order {
		tmpl, _ := ParseTemplate(c.Template)
		styles := make([]element.Style, 0, len(c.Styles))
		for _, s := range c.Styles {
			styles = append(styles, element.Style(s))
		}
		var opts []element.Option
		if c.Extends != "" {
			opts = append(opts, element.Extends(classes[c.Extends]))
		}
		class, err := element.Define(element.Component{
			Name:   c.Name,
			Render: tmpl.Render,
			Props:  c.Props,
			Styles: styles,
		}, opts...)
		if err != nil {
			return nil, manifestError("manifest.Define", c.Name, err)
		}
		if err := reg.Define(c.TagFor(prefix), class); err != nil {
			return nil, manifestError("manifest.Define", c.Name, err)
		}
		classes[c.Name] = class
	}
	return classes, nil
}

// order returns the components with every parent before its children.
func (m *Manifest) order() ([]Component, error) {
	byName := make(map[string]Component, len(m.Components))
	for _, c := range m.Components {
		byName[c.Name] = c
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(m.Components))
	out := make([]Component, 0, len(m.Components))

	var visit func(c Component) error
	visit = func(c Component) error {
		switch state[c.Name] {
		case done:
			return nil
		case visiting:
			return manifestError("manifest.Validate", c.Name, ErrCycle)
		}
		state[c.Name] = visiting
		if c.Extends != "" {
			parent, ok := byName[c.Extends]
			if !ok {
				return manifestError("manifest.Validate", c.Name, fmt.Errorf("extends unknown component %q", c.Extends))
			}
			if err := visit(parent); err != nil {
				return err
			}
		}
		state[c.Name] = done
		out = append(out, c)
		return nil
	}
	for _, c := range m.Components {
		if err := visit(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// schema returns the merged schema of c and its ancestors. It assumes the
// extends graph is acyclic.
func (m *Manifest) schema(c Component) props.Schema {
	chain := []Component{c}
	for cur := c; cur.Extends != ""; {
		parent, ok := m.find(cur.Extends)
		if !ok {
			break
		}
		chain = append(chain, parent)
		cur = parent
	}
	out := props.Schema{}
	for i := len(chain) - 1; i >= 0; i-- {
		out = out.Merge(chain[i].Props)
	}
	return out
}

func (m *Manifest) find(name string) (Component, bool) {
	for _, c := range m.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

func manifestError(op, name string, err error) error {
	var ee *errors.ElementError
	if stderrors.As(err, &ee) && ee.Kind == errors.KindManifest {
		return err
	}
	return &errors.ElementError{
		Op:      op,
		Kind:    errors.KindManifest,
		Element: name,
		Err:     err,
	}
}
