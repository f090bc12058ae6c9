// Package props describes the typed properties a component declares, the
// attribute each one is observed through, and the conversions between
// attribute strings and property values.
package props

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Type is the declared value type of a property. It drives attribute
// coercion and reflection.
type Type int

const (
	// TypeAny accepts any value; attributes are passed through as strings.
	TypeAny Type = iota
	// TypeString holds a string.
	TypeString
	// TypeNumber holds a float64.
	TypeNumber
	// TypeBoolean holds a bool; an attribute is true when present.
	TypeBoolean
	// TypeObject holds a map[string]any; attributes are JSON objects.
	TypeObject
	// TypeArray holds a []any; attributes are JSON arrays.
	TypeArray
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return "any"
	}
}

// ParseType returns the Type named by s (case-insensitive).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return TypeAny, nil
	case "string":
		return TypeString, nil
	case "number":
		return TypeNumber, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "object":
		return TypeObject, nil
	case "array":
		return TypeArray, nil
	default:
		return TypeAny, fmt.Errorf("unknown property type %q", s)
	}
}

// Prop declares one property.
type Prop struct {
	// Type is the value type.
	Type Type
	// Reflect writes the property back to its attribute after each change.
	Reflect bool
	// Value is the default copied onto every new element. Nil means none.
	Value any
	// Attr overrides the observed attribute name. Defaults to AttrName(prop).
	Attr string
}

// AttrName returns the attribute the property is observed through.
func (p Prop) AttrName(prop string) string {
	if p.Attr != "" {
		return p.Attr
	}
	return AttrName(prop)
}

// Schema maps property names to their declarations.
type Schema map[string]Prop

// Merge returns a new schema holding s overlaid with over. Declarations in
// over win.
func (s Schema) Merge(over Schema) Schema {
	out := make(Schema, len(s)+len(over))
	maps.Copy(out, s)
	maps.Copy(out, over)
	return out
}

// Names returns the property names in sorted order.
func (s Schema) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Validate checks that every default matches its declared type.
func (s Schema) Validate() error {
	for _, name := range s.Names() {
		p := s[name]
		if p.Value == nil {
			continue
		}
		if _, err := Normalize(p.Type, p.Value); err != nil {
			return fmt.Errorf("prop %s: default: %w", name, err)
		}
	}
	return nil
}

// AttrName converts a camelCase property name to its kebab-case attribute
// name: "maxItems" becomes "max-items".
func AttrName(prop string) string {
	var sb strings.Builder
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Values is a props store.
type Values map[string]any

// Snapshot returns a shallow copy that later writes to v do not affect.
func (v Values) Snapshot() Values {
	return maps.Clone(v)
}

// String returns the named value as a string, or "" when absent or not a
// string.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Number returns the named value as a float64, or 0.
func (v Values) Number(name string) float64 {
	n, _ := v[name].(float64)
	return n
}

// Bool returns the named value as a bool, or false.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}
