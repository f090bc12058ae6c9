package props

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlProp is the long form of a property declaration:
//
//	count:
//	  type: number
//	  reflect: true
//	  value: 0
type yamlProp struct {
	Type    string `yaml:"type"`
	Reflect bool   `yaml:"reflect,omitempty"`
	Value   any    `yaml:"value,omitempty"`
	Attr    string `yaml:"attr,omitempty"`
}

// UnmarshalYAML accepts either a bare type name ("count: number") or the
// long form with type, reflect, value and attr keys.
func (p *Prop) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t, err := ParseType(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*p = Prop{Type: t}
		return nil
	}
	var raw yamlProp
	if err := node.Decode(&raw); err != nil {
		return err
	}
	t, err := ParseType(raw.Type)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	value, err := Normalize(t, raw.Value)
	if err != nil {
		return fmt.Errorf("line %d: default: %w", node.Line, err)
	}
	*p = Prop{Type: t, Reflect: raw.Reflect, Value: value, Attr: raw.Attr}
	return nil
}

// MarshalYAML writes the long form.
func (p Prop) MarshalYAML() (any, error) {
	return yamlProp{Type: p.Type.String(), Reflect: p.Reflect, Value: p.Value, Attr: p.Attr}, nil
}

// ParseSchema decodes a YAML mapping of property declarations.
func ParseSchema(data []byte) (Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse property schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
