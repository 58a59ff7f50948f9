package handler

import "net/http"

// Response renders an HTTP response: headers, status code and body.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a request handler over a custom context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors returned while processing a request.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
