package manifest

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/hooks"
	"github.com/go-drift/elements/pkg/props"
)

// Template is a parsed text template with {{prop}} placeholders.
type Template struct {
	segments []segment
}

type segment struct {
	text string
	prop string
}

// ParseTemplate parses src. Whitespace inside braces is ignored.
func ParseTemplate(src string) (*Template, error) {
	t := &Template{}
	for src != "" {
		open := strings.Index(src, "{{")
		if open < 0 {
			t.segments = append(t.segments, segment{text: src})
			break
		}
		if open > 0 {
			t.segments = append(t.segments, segment{text: src[:open]})
		}
		rest := src[open+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated placeholder in template")
		}
		name := strings.TrimSpace(rest[:end])
		if name == "" {
			return nil, fmt.Errorf("empty placeholder in template")
		}
		t.segments = append(t.segments, segment{prop: name})
		src = rest[end+2:]
	}
	return t, nil
}

// Names returns the distinct property names the template references, in
// order of first use.
func (t *Template) Names() []string {
	var out []string
	for _, s := range t.segments {
		if s.prop != "" && !slices.Contains(out, s.prop) {
			out = append(out, s.prop)
		}
	}
	return out
}

// Execute renders the template against p.
func (t *Template) Execute(p props.Values) string {
	var sb strings.Builder
	for _, s := range t.segments {
		if s.prop == "" {
			sb.WriteString(s.text)
			continue
		}
		sb.WriteString(display(p[s.prop]))
	}
	return sb.String()
}

// Render is the render function of manifest components. An empty template
// commits nothing.
func (t *Template) Render(_ *hooks.Scope, p props.Values) element.Result {
	if len(t.segments) == 0 {
		return nil
	}
	return dom.Text(t.Execute(p))
}

func display(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case map[string]any:
		if s, err := props.Format(props.TypeObject, x); err == nil && s != nil {
			return *s
		}
	case []any:
		if s, err := props.Format(props.TypeArray, x); err == nil && s != nil {
			return *s
		}
	}
	return fmt.Sprint(v)
}
