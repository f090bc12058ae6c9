// Package scenario runs scripted lifecycle scenarios against a registry.
package scenario

import (
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/log"
	"github.com/go-drift/elements/pkg/loop"
)

var (
	// ErrNoNode is returned by steps that need a mounted node.
	ErrNoNode = stderrors.New("no node mounted")
	// ErrExpectation is returned when an expect step does not match.
	ErrExpectation = stderrors.New("expectation failed")
)

// Scenario is a list of steps. Steps run in the same turn until a pump or
// expect step drains the loop; the loop is always drained at the end.
type Scenario struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scenario action. Exactly one action field should be set.
type Step struct {
	// Mount creates a node with this tag under the first container.
	Mount string `yaml:"mount,omitempty"`
	// Attrs are set on the node created by Mount before insertion.
	Attrs map[string]string `yaml:"attrs,omitempty"`
	// Set writes attributes on the current node.
	Set map[string]string `yaml:"set,omitempty"`
	// Unset removes attributes from the current node.
	Unset []string `yaml:"unset,omitempty"`
	// Move reinserts the current node under the other container.
	Move bool `yaml:"move,omitempty"`
	// Detach removes the current node from the tree.
	Detach bool `yaml:"detach,omitempty"`
	// Attach inserts a detached current node under the first container.
	Attach bool `yaml:"attach,omitempty"`
	// Pump drains the loop.
	Pump bool `yaml:"pump,omitempty"`
	// Expect drains the loop and compares the node's text.
	Expect *string `yaml:"expect,omitempty"`
}

// Parse decodes a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &s, nil
}

// Load reads and decodes the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Report is the outcome of a run.
type Report struct {
	// Text is the current node's text after the last drain.
	Text string
	// Mounted and Unmounted report the current element's lifecycle.
	Mounted   bool
	Unmounted bool
	// Tasks is the number of loop tasks run.
	Tasks int
}

type runner struct {
	loop       *loop.Loop
	doc        *dom.Document
	containers [2]*dom.Node
	current    int
	node       *dom.Node
	out        io.Writer
	log        *zap.Logger
	tasks      int
}

// Run executes s against reg, writing a trace to out.
func Run(s *Scenario, reg *element.Registry, out io.Writer) (*Report, error) {
	l := loop.New()
	r := &runner{
		loop: l,
		doc:  dom.NewDocument(l, reg),
		out:  out,
		log:  log.Logger().Named("scenario"),
	}
	for i := range r.containers {
		r.containers[i] = r.doc.CreateElement(fmt.Sprintf("scenario-slot%d", i))
		if err := r.doc.Root().AppendChild(r.containers[i]); err != nil {
			return nil, err
		}
	}

	for i, step := range s.Steps {
		if err := r.step(step); err != nil {
			return r.report(), fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	r.pump()
	return r.report(), nil
}

func (r *runner) step(s Step) error {
	switch {
	case s.Mount != "":
		return r.mount(s.Mount, s.Attrs)
	case s.Set != nil:
		if r.node == nil {
			return ErrNoNode
		}
		for _, name := range slices.Sorted(maps.Keys(s.Set)) {
			r.tracef("set %s=%q", name, s.Set[name])
			r.node.SetAttribute(name, s.Set[name])
		}
	case s.Unset != nil:
		if r.node == nil {
			return ErrNoNode
		}
		for _, name := range s.Unset {
			r.tracef("unset %s", name)
			r.node.RemoveAttribute(name)
		}
	case s.Move:
		if r.node == nil {
			return ErrNoNode
		}
		r.current = 1 - r.current
		r.tracef("move to slot %d", r.current)
		return r.containers[r.current].AppendChild(r.node)
	case s.Detach:
		if r.node == nil || r.node.Parent() == nil {
			return ErrNoNode
		}
		r.tracef("detach")
		return r.node.Parent().RemoveChild(r.node)
	case s.Attach:
		if r.node == nil {
			return ErrNoNode
		}
		r.tracef("attach")
		return r.containers[r.current].AppendChild(r.node)
	case s.Pump:
		r.pump()
	case s.Expect != nil:
		r.pump()
		if r.node == nil {
			return ErrNoNode
		}
		if got := r.node.Text(); got != *s.Expect {
			return fmt.Errorf("%w: text = %q, want %q", ErrExpectation, got, *s.Expect)
		}
		r.tracef("expect %q ok", *s.Expect)
	default:
		return fmt.Errorf("empty step")
	}
	return nil
}

func (r *runner) mount(tag string, attrs map[string]string) error {
	if _, ok := r.doc.Registry().Get(tag); !ok {
		return fmt.Errorf("tag %q is not defined", tag)
	}
	n := r.doc.CreateElement(tag)
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		n.SetAttribute(name, attrs[name])
	}
	r.node = n
	r.current = 0

	el := n.Element()
	el.Mounted().Then(func(error) { r.tracef("%s mounted (id=%s)", tag, el.ID()) })
	el.Unmounted().Then(func(error) { r.tracef("%s unmounted", tag) })
	r.tracef("mount %s", tag)
	return r.containers[0].AppendChild(n)
}

func (r *runner) pump() {
	n := r.loop.Drain()
	r.tasks += n
	r.log.Debug("pumped", zap.Int("tasks", n))
	if r.node != nil {
		r.tracef("pump: %d tasks, text %q", n, r.node.Text())
	}
}

func (r *runner) report() *Report {
	rep := &Report{Tasks: r.tasks}
	if r.node != nil {
		rep.Text = r.node.Text()
		rep.Mounted = r.node.Element().Mounted().Settled()
		rep.Unmounted = r.node.Element().Unmounted().Settled()
	}
	return rep
}

func (r *runner) tracef(format string, args ...any) {
	if r.out != nil {
		fmt.Fprintf(r.out, format+"\n", args...)
	}
}
