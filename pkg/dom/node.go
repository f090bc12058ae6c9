package dom

import (
	stderrors "errors"
	"maps"
	"slices"
	"strings"

	"github.com/go-drift/elements/pkg/element"
)

var (
	// ErrHierarchy is returned when an insertion would produce an invalid tree.
	ErrHierarchy = stderrors.New("dom: invalid hierarchy")
	// ErrNotChild is returned when a reference node is not a child of the
	// node operated on.
	ErrNotChild = stderrors.New("dom: node is not a child")
)

// Kind distinguishes element nodes from text nodes.
type Kind int

const (
	// KindElement is a tagged node with attributes and children.
	KindElement Kind = iota
	// KindText is a leaf holding character data.
	KindText
	// KindDocument is the root of a document.
	KindDocument
)

// Node is a node of an in-memory document. Element nodes implement
// element.Host and element.StyleHost.
//
// Node is NOT thread-safe; mutate a document only from the goroutine
// driving its loop.
type Node struct {
	doc      *Document
	kind     Kind
	tag      string
	text     string
	attrs    map[string]string
	parent   *Node
	children []*Node
	el       *element.Element
	styles   []element.Style

	committed map[string]bool
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the tag name of an element node.
func (n *Node) Tag() string { return n.tag }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Element returns the element bound to this node, or nil when the node's
// tag has no registered class.
func (n *Node) Element() *element.Element { return n.el }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Styles returns the styles adopted by the node.
func (n *Node) Styles() []element.Style { return slices.Clone(n.styles) }

// IsConnected reports whether the node is attached to its document root.
func (n *Node) IsConnected() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.kind == KindDocument {
			return true
		}
	}
	return false
}

// Attribute returns the value of an attribute.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attributes returns a copy of the node's attributes.
func (n *Node) Attributes() map[string]string {
	return maps.Clone(n.attrs)
}

// SetAttribute sets an attribute and notifies the bound element when the
// name is observed.
func (n *Node) SetAttribute(name, value string) {
	if n.kind != KindElement {
		return
	}
	old, had := n.attrs[name]
	n.attrs[name] = value
	var oldValue *string
	if had {
		oldValue = &old
	}
	n.attributeChanged(name, oldValue, &value)
}

// RemoveAttribute removes an attribute and notifies the bound element when
// the name is observed. Removing an absent attribute does nothing.
func (n *Node) RemoveAttribute(name string) {
	old, had := n.attrs[name]
	if !had {
		return
	}
	delete(n.attrs, name)
	n.attributeChanged(name, &old, nil)
}

func (n *Node) attributeChanged(name string, oldValue, newValue *string) {
	if n.el == nil || !slices.Contains(n.el.ObservedAttributes(), name) {
		return
	}
	n.el.AttributeChanged(name, oldValue, newValue)
}

// AdoptStyles records the styles applied to the node.
func (n *Node) AdoptStyles(styles []element.Style) {
	n.styles = append(n.styles, styles...)
}

// Text returns the node's own text for text nodes and the concatenated
// text of its descendants otherwise.
func (n *Node) Text() string {
	if n.kind == KindText {
		return n.text
	}
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.kind == KindText {
			sb.WriteString(c.text)
		}
		return true
	})
	return sb.String()
}

// SetText replaces the node's content. On element nodes the children are
// replaced by a single text node.
func (n *Node) SetText(text string) {
	if n.kind == KindText {
		n.text = text
		return
	}
	_ = n.ReplaceChildren(n.doc.CreateText(text))
}

// Walk visits n and its descendants depth-first in pre-order. Returning
// false from visit skips the node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range slices.Clone(n.children) {
		c.Walk(visit)
	}
}

// AppendChild inserts child as the last child of n.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref, or last when ref is nil. A child
// that already has a parent is removed from it first, so moving a
// connected node delivers Disconnected followed by Connected.
func (n *Node) InsertBefore(child, ref *Node) error {
	if n.kind == KindText || child.kind == KindDocument || child.doc != n.doc {
		return ErrHierarchy
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == child {
			return ErrHierarchy
		}
	}
	if ref != nil && ref.parent != n {
		return ErrNotChild
	}
	if child == ref {
		return nil
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}

	i := len(n.children)
	if ref != nil {
		i = slices.Index(n.children, ref)
	}
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	if n.IsConnected() {
		child.Walk(func(c *Node) bool {
			if c.el != nil {
				c.el.Connected()
			}
			return true
		})
	}
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	i := slices.Index(n.children, child)
	if i < 0 {
		return ErrNotChild
	}
	connected := n.IsConnected()
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	if connected {
		child.Walk(func(c *Node) bool {
			if c.el != nil {
				c.el.Disconnected()
			}
			return true
		})
	}
	return nil
}

// ReplaceChildren removes every child of n and appends nodes in order.
func (n *Node) ReplaceChildren(nodes ...*Node) error {
	for len(n.children) > 0 {
		if err := n.RemoveChild(n.children[len(n.children)-1]); err != nil {
			return err
		}
	}
	for _, c := range nodes {
		if err := n.AppendChild(c); err != nil {
			return err
		}
	}
	return nil
}
