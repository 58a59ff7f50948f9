// Package handler defines the request-handling contract shared with host routers:
// a request Context, the Response renderer and the generic HandlerFunc, ErrorHandler
// and Middleware function types.
//
//	import "github.com/dmitrymomot/ouch/core/handler"
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type ErrorHandler[C Context] func(ctx C, err error)
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Routers built on this contract accept an ErrorHandler for errors returned by handlers.
// The ouch package produces one from a handler chain:
//
//	errorHandler := ouch.ErrorHandler[handler.Context](run)
//
// NewContext wraps a plain request for code that is not running behind such a router:
//
//	ctx := handler.NewContext(w, r, nil)
//	ctx.SetValue(userKey{}, user)
package handler
