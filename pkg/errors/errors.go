// Package errors provides structured error handling for statefade.
//
// Degraded runtime conditions (no buffered animation, a missing item
// attribute) are not errors and never reach this package. What does reach
// it: configuration contract violations, which constructors return as
// *Error values of kind [KindConfig], and panics recovered from paint
// callbacks, which are reported to the global [ErrorHandler].
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates invalid configuration supplied by the caller.
	KindConfig
	// KindPlatform indicates a failure in the buffered-animation platform.
	KindPlatform
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindContract indicates a caller broke a usage contract at runtime,
	// such as changing state from inside a paint callback.
	KindContract
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindPlatform:
		return "platform"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindContract:
		return "contract"
	default:
		return "unknown"
	}
}

// Error represents a structured error.
type Error struct {
	// Op is the operation that failed (e.g., "stateanim.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config builds a KindConfig error for op.
func Config(op string, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "stateanim.Paint").
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

// ErrorHandler receives errors reported through [Report] and [ReportPanic].
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
