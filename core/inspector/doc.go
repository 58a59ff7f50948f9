// Package inspector exposes diagnostic data about an error: its stack frames, HTTP status
// code, name and message. It is the read model consumed by error handlers.
//
// # Exceptions
//
// Go errors carry no stack trace, so the package provides Exception, an error that records
// the call stack where it was created:
//
//	import "github.com/dmitrymomot/ouch/core/inspector"
//
//	err := inspector.New("payment declined").WithStatus(http.StatusPaymentRequired)
//	err := inspector.Errorf("load user %d: %w", id, sql.ErrNoRows)
//	err := inspector.Wrap(ioErr)
//
// Panics recovered in HTTP middleware are converted with FromPanic together with the
// goroutine dump taken by runtime/debug.Stack.
//
// Any other error works too. The inspector looks through the wrap chain for these optional
// methods:
//
//	Name() string        // display name, "Error thrown" when absent
//	StatusCode() int     // e.g. response.HTTPError
//	HTTPCode() int       // httperr-style coded errors
//	Callers() []uintptr  // program counters
//	Stack() []byte       // goroutine dump, e.g. router panic errors
//
// # Inspecting
//
//	insp := inspector.NewInspector(err)
//
//	insp.ExceptionName()    // "Error"
//	insp.ExceptionMessage() // "payment declined"
//	insp.Code()             // 402; statuses below 400 and missing statuses yield 500
//
//	for _, f := range insp.Frames() {
//		fmt.Println(f.File(), f.Line(), f.Function())
//	}
//
// Frames are parsed once, on the first call to Frames, and cached for the inspector's
// lifetime. Source files are read lazily by Frame.FileContents and Frame.FileLines, since most
// frames never have their source displayed. A missing file is not an error: FileContents
// reports false and FileLines returns nil.
//
// # Comments
//
// Handlers can annotate frames for handlers that run after them:
//
//	for _, f := range insp.Frames() {
//		if f.Method() != "" {
//			f.AddComment("method of "+f.Type(), "analysis")
//		}
//	}
//
//	f.Comments("analysis") // only comments from the "analysis" context
//	f.Comments("")         // all comments, in insertion order
package inspector
