package inspector

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// FallbackExceptionName is returned by ExceptionName when the error carries no name.
const FallbackExceptionName = "Error thrown"

// Inspector is a per-error facade exposing derived diagnostic data:
// frames, status code, name and message. Frames are parsed lazily and cached.
type Inspector struct {
	exception error
	parser    StackParser
	id        string

	framesOnce sync.Once
	frames     []*Frame

	mu   sync.RWMutex
	code int
}

// NewInspector creates an inspector for err.
func NewInspector(err error, opts ...Option) *Inspector {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.parser == nil {
		o.parser = &DefaultStackParser{SourcePaths: o.sourcePaths}
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	return &Inspector{
		exception: err,
		parser:    o.parser,
		id:        o.id,
		code:      o.code,
	}
}

// ID returns the incident identifier assigned to this inspection.
func (i *Inspector) ID() string {
	return i.id
}

// Frames returns the parsed stack frames. Parsing happens on the first call;
// later calls return the same slice.
func (i *Inspector) Frames() []*Frame {
	i.framesOnce.Do(func() {
		i.frames = i.parser.Parse(i.exception)
		if i.frames == nil {
			i.frames = []*Frame{}
		}
	})
	return i.frames
}

// HasFrames reports whether the error carries at least one frame.
func (i *Inspector) HasFrames() bool {
	return len(i.Frames()) > 0
}

// OriginFrame returns the first frame outside the Go runtime, falling back to the first frame.
// It returns nil when there are no frames.
func (i *Inspector) OriginFrame() *Frame {
	frames := i.Frames()
	for _, f := range frames {
		if !f.IsNative() {
			return f
		}
	}
	if len(frames) > 0 {
		return frames[0]
	}
	return nil
}

// SetCode overrides the status code derived from the error.
// A value of 0 restores derivation.
func (i *Inspector) SetCode(code int) {
	i.mu.Lock()
	i.code = code
	i.mu.Unlock()
}

// Code returns the HTTP status code for the error. An explicit code set on the inspector wins.
// Otherwise the error's status is used when it is at least 400; anything else yields 500.
func (i *Inspector) Code() int {
	i.mu.RLock()
	code := i.code
	i.mu.RUnlock()
	if code != 0 {
		return code
	}

	status, ok := findFirst(i.exception, statusOf)
	if !ok || status < http.StatusBadRequest {
		return http.StatusInternalServerError
	}
	return status
}

// Exception returns the inspected error.
func (i *Inspector) Exception() error {
	return i.exception
}

// ExceptionName returns the error's name, or FallbackExceptionName.
func (i *Inspector) ExceptionName() string {
	name, ok := findFirst(i.exception, func(e error) (string, bool) {
		n, ok := e.(interface{ Name() string })
		if !ok || n.Name() == "" {
			return "", false
		}
		return n.Name(), true
	})
	if !ok {
		return FallbackExceptionName
	}
	return name
}

// ExceptionMessage returns the error's message, or "" for a nil error.
func (i *Inspector) ExceptionMessage() string {
	if i.exception == nil {
		return ""
	}
	return i.exception.Error()
}

// statusOf reads a non-zero status from errors implementing StatusCode() int or HTTPCode() int.
func statusOf(err error) (int, bool) {
	if e, ok := err.(interface{ StatusCode() int }); ok {
		if code := e.StatusCode(); code != 0 {
			return code, true
		}
	}
	if e, ok := err.(interface{ HTTPCode() int }); ok {
		if code := e.HTTPCode(); code != 0 {
			return code, true
		}
	}
	return 0, false
}
