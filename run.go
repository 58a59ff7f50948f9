package ouch

import (
	"context"
	"log/slog"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/ouch/core/inspector"
	"github.com/dmitrymomot/ouch/core/logger"
)

// Run owns an ordered list of handlers and runs errors through it.
//
// Example:
//
//	run := ouch.New(
//	    ouch.WithLogger(log),
//	    ouch.WithHandlers(handlers.NewLogHandler(log), handlers.NewPrettyPageHandler()),
//	)
//	run.HandleException(ctx, err, r, w, nil)
type Run struct {
	mu       sync.RWMutex
	handlers []Handler

	logger        *slog.Logger
	inspectorOpts []inspector.Option
}

// New creates a dispatcher with the given options.
func New(opts ...Option) *Run {
	r := &Run{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PushHandler appends a handler to the chain. It accepts a Handler, a func(*Scope, Next)
// or a callback (see CallbackFunc). Any other value yields ErrInvalidHandler and leaves
// the chain unchanged.
func (r *Run) PushHandler(h any) error {
	handler, ok := normalize(h)
	if !ok {
		return ErrInvalidHandler
	}

	r.mu.Lock()
	r.handlers = append(r.handlers, handler)
	r.mu.Unlock()
	return nil
}

// PopHandler removes and returns the last handler, or nil when the chain is empty.
func (r *Run) PopHandler() Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.handlers)
	if n == 0 {
		return nil
	}
	h := r.handlers[n-1]
	r.handlers[n-1] = nil
	r.handlers = r.handlers[:n-1]
	return h
}

// ClearHandlers removes all handlers.
func (r *Run) ClearHandlers() {
	r.mu.Lock()
	r.handlers = nil
	r.mu.Unlock()
}

// Handlers returns the registered handlers in insertion order.
// The slice is a copy; changing it does not affect the chain.
func (r *Run) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// HandleException runs err through a snapshot of the handler chain. Handlers run one at a
// time in registration order until one passes Quit or the chain is exhausted; onComplete,
// if set, then receives the outputs of the handlers that ran, in order.
//
// Request and response are optional. A nil ctx falls back to the request's context.
// Panics raised by handlers are not recovered.
func (r *Run) HandleException(ctx context.Context, err error, req *http.Request, w http.ResponseWriter, onComplete func([]any)) {
	r.handle(ctx, r.Inspect(err), req, w, onComplete)
}

// Process is the blocking form of HandleException. It returns the handler outputs once the
// chain completes, or ctx's error if ctx is done first.
func (r *Run) Process(ctx context.Context, err error, req *http.Request, w http.ResponseWriter) ([]any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	done := make(chan []any, 1)
	r.HandleException(ctx, err, req, w, func(outputs []any) {
		done <- outputs
	})

	select {
	case outputs := <-done:
		return outputs, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Inspect creates an inspector for err with the dispatcher's inspector options.
func (r *Run) Inspect(err error) *inspector.Inspector {
	return inspector.NewInspector(err, r.inspectorOpts...)
}

func (r *Run) handle(ctx context.Context, insp *inspector.Inspector, req *http.Request, w http.ResponseWriter, onComplete func([]any)) {
	if ctx == nil {
		ctx = context.Background()
		if req != nil {
			ctx = req.Context()
		}
	}

	c := &chain{
		run:        r,
		ctx:        ctx,
		insp:       insp,
		req:        req,
		resp:       w,
		handlers:   r.Handlers(),
		onComplete: onComplete,
	}
	c.outputs = make([]any, 0, len(c.handlers))

	r.logger.DebugContext(ctx, "handling exception",
		logger.Component("ouch"),
		logger.IncidentID(insp.ID()),
		logger.Count("handlers", len(c.handlers)),
	)
	c.step(0)
}

// chain is the state of one HandleException call.
type chain struct {
	run        *Run
	ctx        context.Context
	insp       *inspector.Inspector
	req        *http.Request
	resp       http.ResponseWriter
	handlers   []Handler
	outputs    []any
	onComplete func([]any)
}

// step invokes handler i, or completes the chain when none is left.
func (c *chain) step(i int) {
	if i >= len(c.handlers) {
		c.complete()
		return
	}

	var called atomic.Bool
	next := func(output any, sig Signal) {
		if !called.CompareAndSwap(false, true) {
			c.run.logger.ErrorContext(c.ctx, "handler called next more than once; call ignored",
				logger.Component("ouch"),
				logger.IncidentID(c.insp.ID()),
				logger.Count("handler_index", i),
			)
			return
		}

		c.outputs = append(c.outputs, output)
		if sig == Quit {
			c.complete()
			return
		}
		c.step(i + 1)
	}

	scope := NewScope(c.ctx, c.run, c.insp, c.req, c.resp)
	c.handlers[i].Handle(scope, next)
}

func (c *chain) complete() {
	c.run.logger.DebugContext(c.ctx, "exception handled",
		logger.Component("ouch"),
		logger.IncidentID(c.insp.ID()),
		logger.Count("outputs", len(c.outputs)),
	)
	if c.onComplete != nil {
		c.onComplete(c.outputs)
	}
}

func normalize(h any) (Handler, bool) {
	switch v := h.(type) {
	case nil:
		return nil, false
	case Handler:
		return v, !isNil(v)
	case func(*Scope, Next):
		if v == nil {
			return nil, false
		}
		return HandlerFunc(v), true
	}

	if cb, ok := asCallback(h); ok {
		return &CallbackHandler{fn: cb}, true
	}
	return nil, false
}

// isNil reports whether v holds a nil func, pointer or other nilable value,
// e.g. HandlerFunc(nil) or (*JSONResponseHandler)(nil).
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
