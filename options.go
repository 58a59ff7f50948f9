package ouch

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/ouch/core/inspector"
)

// Option configures a Run.
type Option func(*Run)

// WithHandlers registers handlers in order. Accepted values are those of PushHandler;
// anything else panics.
//
// Example:
//
//	run := ouch.New(
//	    ouch.WithHandlers(logHandler, jsonHandler, pageHandler),
//	)
func WithHandlers(handlers ...any) Option {
	return func(r *Run) {
		for i, h := range handlers {
			if err := r.PushHandler(h); err != nil {
				panic(fmt.Sprintf("%s: handler #%d (%T)", err, i, h))
			}
		}
	}
}

// WithLogger sets the logger used for chain diagnostics. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *Run) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithInspectorOptions sets options applied to every inspector the dispatcher creates,
// such as inspector.WithSourcePaths.
func WithInspectorOptions(opts ...inspector.Option) Option {
	return func(r *Run) {
		r.inspectorOpts = append(r.inspectorOpts, opts...)
	}
}
