// Package response provides the HTTP rendering primitives used by the error handlers:
// an HTTPError status table, a writer that tracks whether the header was sent, and
// JSON, HTML and templ responses.
//
//	import "github.com/dmitrymomot/ouch/core/response"
//
//	w = response.NewWriter(w)
//	_ = response.Render(w, r, response.JSONWithStatus(payload, http.StatusNotFound))
//	w.Written() // true
//
// Responses never rewrite a header that has already gone out. When a handler chain writes
// partial output and fails, later responses append to the body instead of corrupting
// the status line.
//
// FromError maps arbitrary errors to an HTTPError for plain fallback responses:
//
//	httpErr := response.FromError(err)
//	http.Error(w, httpErr.Message, httpErr.Status)
package response
