package scenario

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/manifest"
)

const components = `
components:
  - name: badge
    tag: ui-badge
    props:
      label: string
      count: {type: number, value: 0}
    template: "{{label}} ({{count}})"
`

func registry(t *testing.T) *element.Registry {
	t.Helper()
	m, err := manifest.Parse([]byte(components))
	if err != nil {
		t.Fatal(err)
	}
	reg := element.NewRegistry()
	if _, err := m.Define(reg, ""); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestRun_Lifecycle(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - mount: ui-badge
    attrs: {label: Inbox}
  - expect: "Inbox (0)"
  - set: {count: "3"}
  - move: true
  - expect: "Inbox (3)"
  - unset: [label]
  - expect: " (3)"
  - detach: true
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var out bytes.Buffer
	rep, err := Run(s, registry(t), &out)
	if err != nil {
		t.Fatalf("Run() error = %v\n%s", err, out.String())
	}

	if !rep.Mounted || !rep.Unmounted {
		t.Errorf("report = %+v, want mounted and unmounted", rep)
	}
	if rep.Tasks == 0 {
		t.Error("expected tasks to run")
	}
	trace := out.String()
	if strings.Count(trace, "ui-badge unmounted") != 1 {
		t.Errorf("trace should report one unmount:\n%s", trace)
	}
	if i, j := strings.Index(trace, "move to slot 1"), strings.Index(trace, "ui-badge unmounted"); i < 0 || j < i {
		t.Errorf("unexpected trace order:\n%s", trace)
	}
}

func TestRun_MoveKeepsElement(t *testing.T) {
	s := &Scenario{Steps: []Step{
		{Mount: "ui-badge"},
		{Pump: true},
		{Move: true},
		{Move: true},
	}}
	rep, err := Run(s, registry(t), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Unmounted {
		t.Error("moves must not unmount")
	}
}

func TestRun_Errors(t *testing.T) {
	want := "nope"
	tests := []struct {
		name  string
		steps []Step
		is    error
	}{
		{"set without node", []Step{{Set: map[string]string{"a": "b"}}}, ErrNoNode},
		{"move without node", []Step{{Move: true}}, ErrNoNode},
		{"detach detached", []Step{{Mount: "ui-badge"}, {Detach: true}, {Detach: true}}, ErrNoNode},
		{"failed expectation", []Step{{Mount: "ui-badge"}, {Expect: &want}}, ErrExpectation},
		{"unknown tag", []Step{{Mount: "ui-missing"}}, nil},
		{"empty step", []Step{{}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(&Scenario{Steps: tt.steps}, registry(t), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("steps: {")); err == nil {
		t.Error("expected parse error")
	}
}
