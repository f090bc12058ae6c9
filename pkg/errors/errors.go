// Package errors provides structured error handling for the elements runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLifecycle indicates a connect/disconnect bookkeeping error.
	KindLifecycle
	// KindRender indicates a render or commit failure.
	KindRender
	// KindAttribute indicates an attribute value that could not be coerced.
	KindAttribute
	// KindSchema indicates an invalid property schema.
	KindSchema
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindManifest indicates an invalid component manifest.
	KindManifest
)

func (k ErrorKind) String() string {
	switch k {
	case KindLifecycle:
		return "lifecycle"
	case KindRender:
		return "render"
	case KindAttribute:
		return "attribute"
	case KindSchema:
		return "schema"
	case KindPanic:
		return "panic"
	case KindManifest:
		return "manifest"
	default:
		return "unknown"
	}
}

// ElementError represents a structured error raised by the runtime.
type ElementError struct {
	// Op is the operation that failed (e.g., "element.AttributeChanged").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Element is the opaque ID of the element involved, if any.
	Element string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ElementError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s [%s] element=%s: %v", e.Op, e.Kind, e.Element, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "loop.Drain").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// CoerceError represents a failure to convert an attribute string into a
// typed property value.
type CoerceError struct {
	// Attr is the attribute name.
	Attr string
	// Type is the declared property type name.
	Type string
	// Value is the raw attribute value.
	Value string
	// Err is the underlying parse error.
	Err error
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("cannot coerce attribute %s=%q to %s: %v", e.Attr, e.Value, e.Type, e.Err)
}

func (e *CoerceError) Unwrap() error {
	return e.Err
}

// RenderError represents a failure during a render pass.
type RenderError struct {
	// Component is the name of the component whose render failed.
	Component string
	// Phase is "render" or "commit".
	Phase string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	phase := e.Phase
	if phase == "" {
		phase = "render"
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s %s: %v", e.Component, phase, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s %s: %v", e.Component, phase, e.Err)
	}
	return fmt.Sprintf("unknown error in %s %s", e.Component, phase)
}

func (e *RenderError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok && e.Err == nil {
		return err
	}
	return e.Err
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ElementError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
