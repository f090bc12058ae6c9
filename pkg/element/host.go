package element

// Host is the platform object an element is bound to. The host environment
// reports lifecycle changes by calling the element's Connected,
// Disconnected and AttributeChanged methods.
type Host interface {
	// IsConnected reports whether the host is currently in a live tree.
	IsConnected() bool
	// Attribute returns the named attribute and whether it is present.
	Attribute(name string) (string, bool)
	// SetAttribute sets the named attribute.
	SetAttribute(name, value string)
	// RemoveAttribute removes the named attribute.
	RemoveAttribute(name string)
}

// Style is a style resource applied to the host's isolated scope.
type Style string

// StyleHost is implemented by hosts that own an isolated style scope.
type StyleHost interface {
	AdoptStyles(styles []Style)
}

// Result is what a render function returns: a description of content that
// can be committed into the host.
type Result interface {
	// Render commits the result into host. id keys the element's render
	// state; hydrating is true when existing host content should be adopted
	// rather than replaced.
	Render(host Host, id string, hydrating bool) error
}

// ResultFunc adapts a function to the Result interface.
type ResultFunc func(host Host, id string, hydrating bool) error

// Render calls f.
func (f ResultFunc) Render(host Host, id string, hydrating bool) error {
	return f(host, id, hydrating)
}

// ConnectedCallback is implemented by base behaviors that want to observe
// attachment after the element has handled it.
type ConnectedCallback interface {
	Connected()
}

// DisconnectedCallback is implemented by base behaviors that want to
// observe detachment. It runs before the element evaluates the detach.
type DisconnectedCallback interface {
	Disconnected()
}

// AttributeChangedCallback is implemented by base behaviors that handle
// attributes the element's classes do not declare.
type AttributeChangedCallback interface {
	AttributeChanged(name string, oldValue, newValue *string)
}

// HydrateAttribute marks a host whose existing content should be adopted by
// the first render. Style application is skipped for such hosts.
const HydrateAttribute = "data-hydrate"
