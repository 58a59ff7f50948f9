package ouch

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/dmitrymomot/ouch/core/handler"
	"github.com/dmitrymomot/ouch/core/inspector"
	"github.com/dmitrymomot/ouch/core/logger"
	"github.com/dmitrymomot/ouch/core/response"
)

// ServeError runs err through the chain with w as the response sink and waits for the chain
// to complete. If no handler wrote a response, the error is answered in plain text with the
// inspector's status code; an HTTPError with that status contributes its own message.
//
// When the request context ends first, ServeError returns and the handlers' writer is
// detached: later writes are dropped and fail with http.ErrHandlerTimeout. A nil req is
// served with context.Background().
func (r *Run) ServeError(w http.ResponseWriter, req *http.Request, err error) {
	ctx := context.Background()
	if req != nil {
		ctx = req.Context()
	}

	rw := response.NewWriter(w)
	out := &sink{w: rw}
	insp := r.Inspect(err)

	done := make(chan struct{})
	r.handle(ctx, insp, req, out, func([]any) { close(done) })

	select {
	case <-done:
	case <-ctx.Done():
		out.detach()
		r.logger.WarnContext(ctx, "request finished before the error chain",
			logger.Component("ouch"),
			logger.IncidentID(insp.ID()),
			logger.Error(ctx.Err()),
		)
		return
	}

	if rw.Written() {
		return
	}
	code := insp.Code()
	fallback := response.FromError(insp.Exception())
	if fallback.Status != code {
		fallback = response.HTTPError{Status: code, Message: response.StatusText(code)}
	}
	_ = response.Render(rw, req, response.StringWithStatus(fallback.Message, fallback.Status))
}

// sink is the writer handed to handlers by ServeError. Once detached it drops all output.
type sink struct {
	mu       sync.Mutex
	w        *response.Writer
	detached bool
	header   http.Header
}

func (s *sink) Header() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		if s.header == nil {
			s.header = make(http.Header)
		}
		return s.header
	}
	return s.w.Header()
}

func (s *sink) WriteHeader(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.detached {
		s.w.WriteHeader(status)
	}
}

func (s *sink) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return 0, http.ErrHandlerTimeout
	}
	return s.w.Write(b)
}

// Written lets response.HeadersSent see through the sink.
func (s *sink) Written() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detached || s.w.Written()
}

func (s *sink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.detached {
		s.w.Flush()
	}
}

// detach waits for an in-flight write to finish and drops everything after it.
func (s *sink) detach() {
	s.mu.Lock()
	s.detached = true
	s.mu.Unlock()
}

// Middleware recovers panics raised by the wrapped handler and serves them through run.
// http.ErrAbortHandler is re-panicked so the server can abort the response as usual.
//
// Example:
//
//	mux := http.NewServeMux()
//	http.ListenAndServe(":8080", ouch.Middleware(run)(mux))
func Middleware(run *Run) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := response.NewWriter(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				run.ServeError(rw, r, inspector.FromPanic(v, debug.Stack()))
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// ErrorHandler adapts run to routers built on the core/handler contract.
//
// Example:
//
//	onError := ouch.ErrorHandler[handler.Context](run)
//	onError(handler.NewContext(w, r, nil), err)
func ErrorHandler[C handler.Context](run *Run) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		run.ServeError(ctx.ResponseWriter(), ctx.Request(), err)
	}
}
