package dom

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-drift/elements/pkg/element"
)

// Spec describes a node to build when a render result is committed.
type Spec struct {
	Tag      string
	Text     string
	Attrs    map[string]string
	Children []Spec
}

// El describes an element node.
func El(tag string, attrs map[string]string, children ...Spec) Spec {
	return Spec{Tag: tag, Attrs: attrs, Children: children}
}

// T describes a text node.
func T(text string) Spec {
	return Spec{Text: text}
}

func (s Spec) build(d *Document) (*Node, error) {
	if s.Tag == "" {
		return d.CreateText(s.Text), nil
	}
	n := d.CreateElement(s.Tag)
	for _, name := range slices.Sorted(maps.Keys(s.Attrs)) {
		n.SetAttribute(name, s.Attrs[name])
	}
	for _, c := range s.Children {
		child, err := c.build(d)
		if err != nil {
			return nil, err
		}
		if err := n.AppendChild(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Text returns a result that replaces the host's content with text. When
// hydrating, the first commit keeps the host's content if it already holds
// the same text.
func Text(text string) element.Result {
	return element.ResultFunc(func(host element.Host, id string, hydrating bool) error {
		n, err := hostNode(host)
		if err != nil {
			return err
		}
		if n.adopting(id, hydrating) && n.Text() == text {
			return nil
		}
		if len(n.children) == 1 && n.children[0].kind == KindText {
			n.children[0].text = text
			return nil
		}
		n.SetText(text)
		return nil
	})
}

// Tree returns a result that replaces the host's children with nodes built
// from specs. When hydrating, the first commit keeps the host's existing
// children; later commits replace them.
func Tree(specs ...Spec) element.Result {
	return element.ResultFunc(func(host element.Host, id string, hydrating bool) error {
		n, err := hostNode(host)
		if err != nil {
			return err
		}
		if n.adopting(id, hydrating) && len(n.children) > 0 {
			return nil
		}
		nodes := make([]*Node, 0, len(specs))
		for _, s := range specs {
			c, err := s.build(n.doc)
			if err != nil {
				return err
			}
			nodes = append(nodes, c)
		}
		return n.ReplaceChildren(nodes...)
	})
}

func hostNode(host element.Host) (*Node, error) {
	n, ok := host.(*Node)
	if !ok {
		return nil, fmt.Errorf("dom: cannot render into %T", host)
	}
	return n, nil
}

// adopting records a commit keyed by id and reports whether it is the first
// one of a hydrating render, the only commit that adopts existing content.
func (n *Node) adopting(id string, hydrating bool) bool {
	if n.committed == nil {
		n.committed = make(map[string]bool)
	}
	first := !n.committed[id]
	n.committed[id] = true
	return hydrating && first
}
