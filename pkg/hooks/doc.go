// Package hooks implements the per-element hook-slot registry and the
// render session contract the element runtime drives.
//
// A render function receives a *Scope and calls hooks in a fixed order.
// Each call is bound to a slot by its position, so state survives between
// renders as long as the same hooks are called in the same order:
//
//	func counter(s *hooks.Scope, p props.Values) element.Result {
//	    count := hooks.UseState(s, 0)
//	    hooks.UseEffect(s, func() func() {
//	        sub := feed.Subscribe(func() { count.Update(inc) })
//	        return sub.Close
//	    }, hooks.Once)
//	    return dom.Text(fmt.Sprintf("%d", count.Value()))
//	}
//
// # Session
//
// The runtime calls [Registry.Load] once per render pass, commits the
// result, then calls [Registry.CollectEffects] and runs the returned
// callback on the following tick. Effect cleanups therefore run one pass
// after the render that created them, once the replacement content exists.
// When the element is torn down, CollectEffects(true) runs every remaining
// cleanup.
package hooks
