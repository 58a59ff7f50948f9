package handler

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Context defines the contract for request contexts handed to handlers and error handlers.
// NewContext returns the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

// NewContext returns a Context for the request. Path parameters are optional.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) Context {
	return &baseContext{w: w, r: r, params: params}
}

// baseContext delegates the context.Context methods to the request's context.
type baseContext struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string

	mu     sync.RWMutex
	values map[any]any
}

func (c *baseContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *baseContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *baseContext) Err() error                  { return c.r.Context().Err() }

// Value returns values stored with SetValue first, then the request context's values.
func (c *baseContext) Value(key any) any {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return v
	}
	return c.r.Context().Value(key)
}

func (c *baseContext) Request() *http.Request              { return c.r }
func (c *baseContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *baseContext) Param(key string) string {
	return c.params[key]
}

func (c *baseContext) SetValue(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}
