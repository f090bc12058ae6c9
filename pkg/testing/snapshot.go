package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/elements/pkg/dom"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the structure of a document subtree.
type Snapshot struct {
	Tree *SnapshotNode `json:"tree"`
}

// SnapshotNode represents a node in the serialized tree. Element
// identifiers are random, so nodes are numbered per tag instead.
type SnapshotNode struct {
	ID       string            `json:"id"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Styles   []string          `json:"styles,omitempty"`
	Bound    bool              `json:"bound,omitempty"`
	Children []*SnapshotNode   `json:"children,omitempty"`
}

// CaptureSnapshot captures the subtree of every mounted node.
func (t *Tester) CaptureSnapshot() *Snapshot {
	return CaptureSnapshot(t.container)
}

// CaptureSnapshot captures the subtree rooted at root.
func CaptureSnapshot(root *dom.Node) *Snapshot {
	return &Snapshot{Tree: captureNode(root, &tagCounter{})}
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// ELEMENTS_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("ELEMENTS_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: ELEMENTS_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: ELEMENTS_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// tagCounter assigns stable IDs like "x-card#0", "x-card#1".
type tagCounter struct {
	counts map[string]int
}

func (c *tagCounter) next(name string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[name]
	c.counts[name] = n + 1
	return fmt.Sprintf("%s#%d", name, n)
}

func captureNode(n *dom.Node, counter *tagCounter) *SnapshotNode {
	switch n.Kind() {
	case dom.KindText:
		return &SnapshotNode{ID: counter.next("#text"), Text: n.Text()}
	case dom.KindDocument:
		return &SnapshotNode{ID: counter.next("#document"), Children: captureChildren(n, counter)}
	}

	node := &SnapshotNode{
		ID:    counter.next(n.Tag()),
		Bound: n.Element() != nil,
	}
	if attrs := n.Attributes(); len(attrs) > 0 {
		node.Attrs = attrs
	}
	for _, s := range n.Styles() {
		node.Styles = append(node.Styles, string(s))
	}
	node.Children = captureChildren(n, counter)
	return node
}

func captureChildren(n *dom.Node, counter *tagCounter) []*SnapshotNode {
	var out []*SnapshotNode
	for _, c := range n.Children() {
		out = append(out, captureNode(c, counter))
	}
	return out
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}

	return buf.String()
}
