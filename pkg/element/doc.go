// Package element binds component definitions to host nodes.
//
// A Class is built from a Component (a render function, a property schema
// and styles) and may extend another class. Each Element created from a
// class owns a props store, a hook registry and a two-signal lifecycle
// gate. Render passes are requested with Update: requests made before a
// pass starts share it, passes run one at a time, and the first one waits
// for the host to be connected. Effects of a pass are settled on the tick
// after its commit, and the cleanups they return run when the next pass
// settles or, once detachment is confirmed, at teardown.
//
// The host environment drives an element through Connected, Disconnected
// and AttributeChanged. Declared attributes are coerced into properties;
// reflecting properties are written back to their attributes after the
// update that follows the change.
package element
