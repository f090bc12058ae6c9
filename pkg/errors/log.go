package errors

import (
	"go.uber.org/zap"

	"github.com/go-drift/elements/pkg/log"
)

// LogHandler is an ErrorHandler that writes errors to the runtime logger.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs an ElementError.
func (h *LogHandler) HandleError(err *ElementError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Element != "" {
		fields = append(fields, zap.String("element", err.Element))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	log.Logger().Error("elements error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	log.Logger().Error("elements panic", fields...)
}
