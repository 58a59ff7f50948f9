package logger

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/ouch/core/inspector"
)

// Attribute helpers return an empty Attr for nil or empty input,
// so log.Error("msg", logger.Error(err)) needs no nil check; slog drops empty attrs.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Error Handling
// ============================================================================

// Errors groups the non-nil errors under "errors", keyed by their argument index.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Exceptions
// ============================================================================

// IncidentID identifies one inspected error across the log entry and the rendered page.
func IncidentID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("incident_id", id)
}

// ExceptionName creates an attribute for the display name of an error.
func ExceptionName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("exception", name)
}

// Frame renders a stack frame as a group of file, line and function.
func Frame(f *inspector.Frame) slog.Attr {
	if f == nil {
		return slog.Attr{}
	}
	return Group("frame", frameAttrs(f)...)
}

// Frames renders at most limit frames under "frames", keyed by position.
// A limit of 0 or less keeps all frames.
func Frames(frames []*inspector.Frame, limit int) slog.Attr {
	if limit <= 0 || limit > len(frames) {
		limit = len(frames)
	}
	if limit == 0 {
		return slog.Attr{}
	}

	as := make([]slog.Attr, 0, limit)
	for i, f := range frames[:limit] {
		as = append(as, Group(strconv.Itoa(i), frameAttrs(f)...))
	}
	return slog.Attr{Key: "frames", Value: slog.GroupValue(as...)}
}

func frameAttrs(f *inspector.Frame) []slog.Attr {
	return []slog.Attr{
		slog.String("file", f.File()),
		slog.Int("line", f.Line()),
		slog.String("function", f.Function()),
	}
}

// ============================================================================
// Timing
// ============================================================================

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed records the time since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Network and HTTP
// ============================================================================

// RequestID creates an attribute for HTTP request IDs.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

func UserAgent(ua string) slog.Attr {
	if ua == "" {
		return slog.Attr{}
	}
	return slog.String("user_agent", ua)
}

// ============================================================================
// Generic Metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}
