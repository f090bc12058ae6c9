package testing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"testing"

	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/loop"
)

// ErrNotSettled is returned by PumpUntil when the loop runs dry before the
// future resolves.
var ErrNotSettled = errors.New("PumpUntil: future did not settle")

// ContainerTag is the tag of the connected node mounted elements are
// inserted under.
const ContainerTag = "test-root"

// Tester drives elements in an in-memory document without a host
// environment. Each Tester owns its loop, registry and document.
type Tester struct {
	loop      *loop.Loop
	registry  *element.Registry
	doc       *dom.Document
	container *dom.Node
	mounted   []*dom.Node
}

// NewTester creates a tester with an empty registry.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	l := loop.New()
	reg := element.NewRegistry()
	doc := dom.NewDocument(l, reg)
	container := doc.CreateElement(ContainerTag)
	if err := doc.Root().AppendChild(container); err != nil {
		panic(fmt.Sprintf("NewTester: cannot connect container: %v", err))
	}
	return &Tester{loop: l, registry: reg, doc: doc, container: container}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup removes every mounted node and pumps, so terminal cleanups run.
func (t *Tester) Cleanup() {
	for _, n := range t.mounted {
		if p := n.Parent(); p != nil {
			if err := p.RemoveChild(n); err != nil {
				panic(fmt.Sprintf("Cleanup: cannot remove <%s>: %v", n.Tag(), err))
			}
		}
	}
	t.mounted = nil
	t.Pump()
}

// Define registers c under tag.
func (t *Tester) Define(tag string, c *element.Class) error {
	return t.registry.Define(tag, c)
}

// Mount creates a node for tag, sets attrs in sorted order, inserts it
// under the container and pumps.
func (t *Tester) Mount(tag string, attrs map[string]string) *dom.Node {
	n := t.doc.CreateElement(tag)
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		n.SetAttribute(name, attrs[name])
	}
	t.Attach(n)
	return n
}

// Attach inserts an existing node under the container and pumps. It panics
// if the node cannot be inserted, for example when it belongs to another
// document.
func (t *Tester) Attach(n *dom.Node) {
	if err := t.container.AppendChild(n); err != nil {
		panic(fmt.Sprintf("Attach: cannot insert <%s>: %v", n.Tag(), err))
	}
	t.mounted = append(t.mounted, n)
	t.Pump()
}

// Unmount removes n from its parent and pumps.
func (t *Tester) Unmount(n *dom.Node) error {
	p := n.Parent()
	if p == nil {
		return dom.ErrNotChild
	}
	if err := p.RemoveChild(n); err != nil {
		return err
	}
	t.Pump()
	return nil
}

// Pump runs queued tasks until the loop is idle and returns how many ran.
func (t *Tester) Pump() int {
	return t.loop.Drain()
}

// PumpUntil pumps and returns the error f resolved with, or ErrNotSettled
// when the loop went idle first.
func (t *Tester) PumpUntil(f *loop.Future) error {
	t.Pump()
	if !f.Settled() {
		return ErrNotSettled
	}
	return f.Err()
}

// Loop returns the tester's loop.
func (t *Tester) Loop() *loop.Loop {
	return t.loop
}

// Document returns the tester's document.
func (t *Tester) Document() *dom.Document {
	return t.doc
}

// Registry returns the tester's registry.
func (t *Tester) Registry() *element.Registry {
	return t.registry
}

// Container returns the connected node elements are mounted under.
func (t *Tester) Container() *dom.Node {
	return t.container
}

// Find evaluates a finder against the container's subtree.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		nodes:  finder.Evaluate(t.container),
		finder: finder,
	}
}
