package testing

import (
	"testing"

	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/hooks"
	"github.com/go-drift/elements/pkg/props"
	"github.com/go-drift/elements/pkg/testing/internal/testbed"
)

// card renders a title and a nested counter.
var card = element.MustDefine(element.Component{
	Name: "card",
	Render: func(s *hooks.Scope, p props.Values) element.Result {
		return dom.Tree(
			dom.El("h1", map[string]string{"class": "title"}, dom.T(p.String("title"))),
			dom.El(testbed.CounterTag, map[string]string{"start": "7"}),
		)
	},
	Props: props.Schema{"title": {Type: props.TypeString}},
})

func mountCard(t *testing.T) *Tester {
	t.Helper()
	tester := NewTesterWithT(t)
	_ = tester.Define(testbed.CounterTag, testbed.Counter)
	_ = tester.Define("x-card", card)
	tester.Mount("x-card", map[string]string{"title": "Hello"})
	return tester
}

func TestByTag(t *testing.T) {
	tester := mountCard(t)

	if got := tester.Find(ByTag("x-card")).Count(); got != 1 {
		t.Errorf("ByTag(x-card) = %d, want 1", got)
	}
	if got := tester.Find(ByTag("x-counter")).Count(); got != 1 {
		t.Errorf("ByTag(x-counter) = %d, want 1", got)
	}
	if tester.Find(ByTag("x-missing")).Exists() {
		t.Error("should not find x-missing")
	}
}

func TestByText(t *testing.T) {
	tester := mountCard(t)

	if !tester.Find(ByText("count: 7")).Exists() {
		t.Error("expected to find text 'count: 7'")
	}
	if tester.Find(ByText("count")).Exists() {
		t.Error("ByText should match exact content only")
	}
}

func TestByTextContaining(t *testing.T) {
	tester := mountCard(t)

	if !tester.Find(ByTextContaining("ell")).Exists() {
		t.Error("expected to find text containing 'ell'")
	}
	if tester.Find(ByTextContaining("99")).Exists() {
		t.Error("should not find text containing '99'")
	}
}

func TestByAttribute(t *testing.T) {
	tester := mountCard(t)

	result := tester.Find(ByAttribute("class", "title"))
	if result.Count() != 1 || result.First().Tag() != "h1" {
		t.Errorf("ByAttribute(class=title) = %v", result.All())
	}
}

func TestByPredicate(t *testing.T) {
	tester := mountCard(t)

	bound := tester.Find(ByPredicate(func(n *dom.Node) bool { return n.Element() != nil }))
	if bound.Count() != 2 {
		t.Errorf("bound nodes = %d, want 2", bound.Count())
	}
}

func TestDescendant(t *testing.T) {
	tester := mountCard(t)

	result := tester.Find(Descendant(ByTag("x-card"), ByTag("x-counter")))
	if result.Count() != 1 {
		t.Errorf("Descendant = %d, want 1", result.Count())
	}
	if tester.Find(Descendant(ByTag("x-counter"), ByTag("x-card"))).Exists() {
		t.Error("x-card is not a descendant of x-counter")
	}
}

func TestAncestor(t *testing.T) {
	tester := mountCard(t)

	result := tester.Find(Ancestor(ByText("Hello"), ByPredicate(func(*dom.Node) bool { return true })))
	var tags []string
	for _, n := range result.All() {
		tags = append(tags, n.Tag())
	}
	if len(tags) != 3 || tags[0] != ContainerTag || tags[1] != "x-card" || tags[2] != "h1" {
		t.Errorf("ancestors = %v, want [%s x-card h1]", tags, ContainerTag)
	}
}

func TestFinderResult_FirstOrNil(t *testing.T) {
	tester := mountCard(t)

	if tester.Find(ByTag("x-missing")).FirstOrNil() != nil {
		t.Error("FirstOrNil should be nil without matches")
	}
	if tester.Find(ByTag("x-card")).FirstOrNil() == nil {
		t.Error("FirstOrNil should return the match")
	}
}

func TestFinderResult_FirstPanics(t *testing.T) {
	tester := mountCard(t)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic from First() without matches")
		}
	}()
	tester.Find(ByTag("x-missing")).First()
}

func TestFinderResult_AtOutOfRange(t *testing.T) {
	tester := mountCard(t)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic from At() out of range")
		}
	}()
	tester.Find(ByTag("x-card")).At(1)
}

func TestFinderResult_Element(t *testing.T) {
	tester := mountCard(t)

	el := tester.Find(ByTag("x-counter")).Element()
	if el == nil || el.Get("start") != 7.0 {
		t.Errorf("Element() = %v", el)
	}
}
