package inspector

import (
	"errors"
	"fmt"
)

// DefaultExceptionName is the name of exceptions created without WithName.
const DefaultExceptionName = "Error"

// PanicExceptionName is the name of exceptions created from recovered panics.
const PanicExceptionName = "Panic"

// Exception is an error that records the call stack where it was created.
// It optionally carries a display name and an HTTP status code.
// Exceptions are immutable; the With* methods return modified copies.
type Exception struct {
	name    string
	message string
	status  int
	cause   error
	pcs     []uintptr
	stack   []byte
}

// New creates an exception with the given message, capturing the caller's stack.
func New(message string) *Exception {
	return &Exception{
		name:    DefaultExceptionName,
		message: message,
		pcs:     captureCallers(1),
	}
}

// Errorf formats a message like fmt.Errorf, capturing the caller's stack.
// A %w verb makes the formatted error's wrapped errors reachable through Unwrap.
func Errorf(format string, args ...any) *Exception {
	err := fmt.Errorf(format, args...)
	return &Exception{
		name:    DefaultExceptionName,
		message: err.Error(),
		cause:   errors.Unwrap(err),
		pcs:     captureCallers(1),
	}
}

// Wrap turns err into an exception with err's message, capturing the caller's stack.
// It returns nil for a nil error.
func Wrap(err error) *Exception {
	if err == nil {
		return nil
	}
	return &Exception{
		name:    DefaultExceptionName,
		message: err.Error(),
		cause:   err,
		pcs:     captureCallers(1),
	}
}

// FromPanic converts a recovered panic value and the goroutine dump taken in the deferred
// recover call (runtime/debug.Stack) into an exception.
func FromPanic(v any, stack []byte) *Exception {
	e := &Exception{
		name:  PanicExceptionName,
		stack: stack,
	}

	switch x := v.(type) {
	case error:
		e.message = x.Error()
		e.cause = x
	case string:
		e.message = x
	default:
		e.message = fmt.Sprint(x)
	}

	if len(stack) == 0 {
		e.pcs = captureCallers(1)
	}
	return e
}

// WithStatus returns a copy of the exception carrying an HTTP status code.
func (e *Exception) WithStatus(code int) *Exception {
	c := *e
	c.status = code
	return &c
}

// WithName returns a copy of the exception with a display name.
func (e *Exception) WithName(name string) *Exception {
	c := *e
	c.name = name
	return &c
}

// Error implements the error interface.
func (e *Exception) Error() string {
	return e.message
}

// Name returns the exception's display name.
func (e *Exception) Name() string {
	return e.name
}

// StatusCode returns the HTTP status code, or 0 when none was set.
func (e *Exception) StatusCode() int {
	return e.status
}

// Unwrap returns the wrapped error, if any.
func (e *Exception) Unwrap() error {
	return e.cause
}

// Callers returns the program counters captured at creation.
func (e *Exception) Callers() []uintptr {
	return e.pcs
}

// Stack returns the goroutine dump of a recovered panic, or nil.
func (e *Exception) Stack() []byte {
	return e.stack
}
