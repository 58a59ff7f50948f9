// Package ouch runs errors through an ordered chain of pluggable handlers.
//
// Each handler may inspect the error, produce an artifact (an HTML page, a JSON payload,
// a log entry) and stop the chain. The package provides the dispatcher (Run), the handler
// contract (Handler, Next, Signal, Scope), the callback adapter and the net/http integration.
// Concrete handlers live in the handlers package; error inspection lives in core/inspector.
//
// # Handling errors
//
//	run := ouch.New(ouch.WithHandlers(
//		handlers.NewLogHandler(log),
//		handlers.NewJSONResponseHandler(handlers.OnlyForAjaxOrJSON()),
//		handlers.NewPrettyPageHandler(handlers.WithEditor("vscode")),
//	))
//
//	http.ListenAndServe(":8080", ouch.Middleware(run)(mux))
//
// Outside HTTP, or to collect artifacts instead of sending them, call HandleException
// without a response sink:
//
//	run.HandleException(ctx, err, nil, nil, func(outputs []any) {
//		fmt.Println(outputs[0]) // the JSON payload
//	})
//
// # Writing handlers
//
// A handler receives a Scope with the inspector, the request and the response, and must call
// next exactly once. Passing Quit stops the chain:
//
//	run.PushHandler(ouch.HandlerFunc(func(s *ouch.Scope, next ouch.Next) {
//		if s.Inspector().Code() == http.StatusNotFound {
//			http.NotFound(s.Response(), s.Request())
//			next(nil, ouch.Quit)
//			return
//		}
//		next(nil, ouch.Continue)
//	}))
//
// Plain functions with the CallbackFunc signature are wrapped automatically:
//
//	run.PushHandler(func(next ouch.Next, err error, insp *inspector.Inspector, run *ouch.Run, r *http.Request, w http.ResponseWriter) {
//		next("seen "+insp.ID(), ouch.Continue)
//	})
//
// Handlers may call next from another goroutine, for example after asynchronous I/O. The chain
// waits without a timeout; a handler that never calls next stalls its own invocation only.
// Calls to next after the first are ignored and logged.
//
// # Concurrency
//
// Each HandleException call works on its own snapshot of the handler list, its own Inspector
// and fresh Scopes, so a single Run serves concurrent requests. Registration is safe for
// concurrent use; changes affect calls that start afterwards.
package ouch
