// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"fmt"

	"github.com/go-drift/elements/pkg/dom"
	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/hooks"
	"github.com/go-drift/elements/pkg/props"
)

// CounterTag is the tag Counter is usually registered under.
const CounterTag = "x-counter"

// Counter renders "label: n" where n starts at the start prop and is
// incremented through the Increment controller exposed by the base.
var Counter = element.MustDefine(element.Component{
	Name: "counter",
	Render: func(s *hooks.Scope, p props.Values) element.Result {
		count := hooks.UseState(s, int(p.Number("start")))
		ctl := hooks.UseRef[*Controls](s, nil)
		if ctl.Current == nil {
			ctl.Current = hooks.UseHost(s).(*dom.Node).Element().Base().(*Controls)
		}
		ctl.Current.increment = func() { count.Update(func(n int) int { return n + 1 }) }
		return dom.Text(fmt.Sprintf("%s: %d", p.String("label"), count.Value()))
	},
	Props: props.Schema{
		"label": {Type: props.TypeString, Value: "count"},
		"start": {Type: props.TypeNumber},
	},
}, element.WithBase(func(*element.Element) any { return &Controls{} }))

// Controls is the base behavior of Counter.
type Controls struct {
	increment func()
}

// Increment bumps the counter. It does nothing before the first render.
func (c *Controls) Increment() {
	if c.increment != nil {
		c.increment()
	}
}
