package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// holder boxes the handler so it can live in an atomic.Pointer.
type holder struct{ h ErrorHandler }

var current atomic.Pointer[holder]

func init() {
	current.Store(&holder{h: &LogHandler{}})
}

// Handler returns the global error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// SetHandler installs h as the global error handler and returns the one it
// replaced. Pass nil to restore a default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&holder{h: h}).h
}

// Report sends an error to the global handler, stamping it with the
// current time if it has none.
func Report(err *ElementError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandlePanic(err)
}

// Recover reports a panic in progress under op. It must be deferred
// directly:
//
//	defer errors.Recover("loop.task")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// RecoverRender converts a panic in progress into a *RenderError for
// component and phase, stored in *err. Nothing is reported; the error
// travels to whoever awaits the pass. It must be deferred directly.
func RecoverRender(component, phase string, err *error) {
	if r := recover(); r != nil {
		*err = &RenderError{
			Component:  component,
			Phase:      phase,
			Recovered:  r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		}
	}
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame, without runtime frames.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
