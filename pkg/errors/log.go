package errors

import (
	"log/slog"

	"github.com/go-drift/statefade/pkg/logging"
)

// LogHandler is an ErrorHandler that writes errors to a structured logger.
type LogHandler struct {
	// Verbose adds stack traces to the logged records.
	Verbose bool

	logger *slog.Logger
}

// NewLogHandler returns a handler writing to logger, or to a stderr
// logger at info level when logger is nil.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = logging.New(slog.LevelInfo)
	}
	return &LogHandler{logger: logger}
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "error", err.Err}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger.Error("statefade error", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger.Error("statefade panic", attrs...)
}
