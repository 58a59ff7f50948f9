package ouch

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/ouch/core/inspector"
)

// Scope carries the references injected into a handler for one call: the dispatcher,
// the inspector of the error being handled, and the optional request and response.
// A fresh Scope is built for every handler call, so handlers never see another
// invocation's state.
type Scope struct {
	ctx  context.Context
	run  *Run
	insp *inspector.Inspector
	req  *http.Request
	resp http.ResponseWriter
}

// NewScope builds a Scope. The dispatcher does this for every handler call;
// it is exported for testing handlers in isolation.
func NewScope(ctx context.Context, run *Run, insp *inspector.Inspector, r *http.Request, w http.ResponseWriter) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Scope{ctx: ctx, run: run, insp: insp, req: r, resp: w}
}

// Context returns the context of the HandleException call.
func (s *Scope) Context() context.Context { return s.ctx }

// Run returns the dispatcher executing the chain.
func (s *Scope) Run() *Run { return s.run }

// Inspector returns the inspector shared by all handlers of the chain.
func (s *Scope) Inspector() *inspector.Inspector { return s.insp }

// Exception returns the error being handled.
func (s *Scope) Exception() error {
	if s.insp == nil {
		return nil
	}
	return s.insp.Exception()
}

// Request returns the request the error occurred in, or nil.
func (s *Scope) Request() *http.Request { return s.req }

// Response returns the live response sink, or nil when the output should be returned
// through Next instead.
func (s *Scope) Response() http.ResponseWriter { return s.resp }
