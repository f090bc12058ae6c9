// Package dom is an in-memory document that hosts elements.
//
// Element nodes implement element.Host. Inserting a node under a connected
// parent reports Connected to every bound element of its subtree, removing
// it reports Disconnected, and moving a connected node reports both in
// that order. Attribute writes are reported to the bound element when the
// name is one its class observes.
//
//	l := loop.New()
//	reg := element.NewRegistry()
//	reg.Define("x-greeting", greeting)
//	doc := dom.NewDocument(l, reg)
//	n := doc.CreateElement("x-greeting")
//	doc.Root().AppendChild(n)
//	l.Drain()
package dom
