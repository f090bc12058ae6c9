package dom

import (
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/loop"
)

// Document owns a tree of nodes and binds element nodes to the classes of
// a registry.
type Document struct {
	loop     *loop.Loop
	registry *element.Registry
	root     *Node
}

// NewDocument creates an empty document whose elements schedule work on l.
// A nil registry creates one.
func NewDocument(l *loop.Loop, registry *element.Registry) *Document {
	if registry == nil {
		registry = element.NewRegistry()
	}
	d := &Document{loop: l, registry: registry}
	d.root = &Node{doc: d, kind: KindDocument}
	return d
}

// Root returns the document node. Nodes inserted under it are connected.
func (d *Document) Root() *Node { return d.root }

// Loop returns the document's loop.
func (d *Document) Loop() *loop.Loop { return d.loop }

// Registry returns the registry used to upgrade element nodes.
func (d *Document) Registry() *element.Registry { return d.registry }

// CreateElement creates a detached element node. When tag is registered
// the node is upgraded immediately.
func (d *Document) CreateElement(tag string) *Node {
	n := &Node{doc: d, kind: KindElement, tag: tag, attrs: make(map[string]string)}
	d.Upgrade(n)
	return n
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	return &Node{doc: d, kind: KindText, text: text}
}

// Upgrade binds n to the class registered for its tag. Observed attributes
// already present are reported to the new element, and a connected node is
// reported as connected. It returns false when n is already bound or its
// tag is not registered.
func (d *Document) Upgrade(n *Node) bool {
	if n.kind != KindElement || n.el != nil {
		return false
	}
	c, ok := d.registry.Get(n.tag)
	if !ok {
		return false
	}
	n.el = c.New(d.loop, n)
	for _, name := range c.ObservedAttributes() {
		if v, ok := n.attrs[name]; ok {
			n.el.AttributeChanged(name, nil, &v)
		}
	}
	if n.IsConnected() {
		n.el.Connected()
	}
	return true
}

// UpgradeAll upgrades every element node of the tree whose tag has since
// been registered, and returns how many were bound.
func (d *Document) UpgradeAll() int {
	count := 0
	d.root.Walk(func(n *Node) bool {
		if d.Upgrade(n) {
			count++
		}
		return true
	})
	return count
}

// Elements returns the bound elements of the connected tree in document
// order.
func (d *Document) Elements() []*element.Element {
	var out []*element.Element
	d.root.Walk(func(n *Node) bool {
		if n.el != nil {
			out = append(out, n.el)
		}
		return true
	})
	return out
}
