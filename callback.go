package ouch

import (
	"net/http"

	"github.com/dmitrymomot/ouch/core/inspector"
)

// CallbackFunc is the signature of plain function handlers.
type CallbackFunc func(next Next, exception error, insp *inspector.Inspector, run *Run, r *http.Request, w http.ResponseWriter)

// CallbackHandler adapts a CallbackFunc to the Handler interface.
type CallbackHandler struct {
	fn CallbackFunc
}

// NewCallbackHandler wraps fn, which must be a CallbackFunc or a plain function with the same
// signature. Anything else yields ErrNotCallable.
func NewCallbackHandler(fn any) (*CallbackHandler, error) {
	cb, ok := asCallback(fn)
	if !ok {
		return nil, ErrNotCallable
	}
	return &CallbackHandler{fn: cb}, nil
}

// Handle invokes the callback with the values of the scope.
func (h *CallbackHandler) Handle(s *Scope, next Next) {
	h.fn(next, s.Exception(), s.Inspector(), s.Run(), s.Request(), s.Response())
}

func asCallback(fn any) (CallbackFunc, bool) {
	switch f := fn.(type) {
	case CallbackFunc:
		return f, f != nil
	case func(Next, error, *inspector.Inspector, *Run, *http.Request, http.ResponseWriter):
		return f, f != nil
	}
	return nil, false
}
