package response

import (
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ouch/core/handler"
)

// TemplWithStatus renders a templ component as text/html with the request's context,
// or context.Background() when there is no request. A zero status means 200.
func TemplWithStatus(component templ.Component, status int) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		writeStatus(w, status)

		ctx := context.Background()
		if r != nil {
			ctx = r.Context()
		}
		if err := component.Render(ctx, w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	}
}
