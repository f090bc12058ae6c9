package element

import (
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrAlreadyDefined is returned when a tag is defined twice.
var ErrAlreadyDefined = stderrors.New("element: tag already defined")

// Registry maps tag names to classes.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Define registers c under tag. Tags must be lowercase, start with a letter
// and contain a hyphen.
func (r *Registry) Define(tag string, c *Class) error {
	if err := ValidateTag(tag); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[tag]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyDefined, tag)
	}
	r.classes[tag] = c
	return nil
}

// Get returns the class registered under tag.
func (r *Registry) Get(tag string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[tag]
	return c, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.classes))
}

// ValidateTag checks that tag is a valid element name.
func ValidateTag(tag string) error {
	if tag == "" {
		return stderrors.New("element: empty tag")
	}
	if tag[0] < 'a' || tag[0] > 'z' {
		return fmt.Errorf("element: tag %q must start with a lowercase letter", tag)
	}
	hyphen := false
	for _, r := range tag {
		switch {
		case r == '-':
			hyphen = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
		default:
			return fmt.Errorf("element: tag %q contains invalid character %q", tag, r)
		}
	}
	if !hyphen {
		return fmt.Errorf("element: tag %q must contain a hyphen", tag)
	}
	return nil
}
