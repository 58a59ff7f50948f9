package inspector

import (
	"bufio"
	"bytes"
	"runtime"
	"strconv"
	"strings"
)

// maxStackDepth bounds the number of program counters captured for an Exception.
const maxStackDepth = 64

// StackParser turns the native stack trace carried by an error into frames.
type StackParser interface {
	Parse(err error) []*Frame
}

// StackParserFunc adapts a function to the StackParser interface.
type StackParserFunc func(err error) []*Frame

// Parse calls fn(err).
func (fn StackParserFunc) Parse(err error) []*Frame {
	return fn(err)
}

// callersProvider is implemented by errors that captured program counters.
type callersProvider interface {
	Callers() []uintptr
}

// stackProvider is implemented by errors carrying a goroutine dump,
// such as the panic errors produced by routers or FromPanic.
type stackProvider interface {
	Stack() []byte
}

// DefaultStackParser reads stacks from errors implementing Callers() []uintptr
// or Stack() []byte anywhere in their wrap chain. The deepest error carrying a stack wins,
// since it is closest to where the failure originated.
type DefaultStackParser struct {
	// SourcePaths are extra roots searched for source files recorded with relative paths.
	SourcePaths []string
}

// Parse implements StackParser.
func (p *DefaultStackParser) Parse(err error) []*Frame {
	var frames []*Frame

	walk(err, func(e error) bool {
		if sp, ok := e.(stackProvider); ok {
			if dump := sp.Stack(); len(dump) > 0 {
				frames = ParseStack(dump)
				return true
			}
		}
		if cp, ok := e.(callersProvider); ok {
			if pcs := cp.Callers(); len(pcs) > 0 {
				frames = FramesFromCallers(pcs)
			}
		}
		return true
	})

	for _, f := range frames {
		f.roots = p.SourcePaths
	}
	return frames
}

// FramesFromCallers resolves program counters into frames.
// Inlined calls are expanded by runtime.CallersFrames.
func FramesFromCallers(pcs []uintptr) []*Frame {
	if len(pcs) == 0 {
		return nil
	}

	it := runtime.CallersFrames(pcs)
	out := make([]*Frame, 0, len(pcs))
	for {
		fr, more := it.Next()
		out = append(out, NewFrame(fr.File, fr.Line, fr.Function))
		if !more {
			break
		}
	}
	return out
}

// ParseStack parses the first goroutine of a dump in the format produced by runtime/debug.Stack.
// When the dump contains a panic call, the frames above it (recovery machinery) are dropped so
// that the first frame is the one that panicked.
func ParseStack(dump []byte) []*Frame {
	var (
		out      []*Frame
		function string
		pending  bool
	)

	sc := bufio.NewScanner(bytes.NewReader(dump))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			// Only the first goroutine is parsed.
			if len(out) > 0 || pending {
				return trimPanicFrames(out)
			}
		case strings.HasPrefix(trimmed, "goroutine "), strings.HasPrefix(trimmed, "..."):
			continue
		case strings.HasPrefix(line, "\t"):
			if !pending {
				continue
			}
			file, lineNo := parseLocation(trimmed)
			out = append(out, NewFrame(file, lineNo, function))
			pending = false
		default:
			function = parseFunction(trimmed)
			pending = true
		}
	}

	return trimPanicFrames(out)
}

// parseFunction strips the argument list and goroutine suffix from a dump function line:
//
//	main.(*T).Run(0xc000010000, {0x4b2c1e, 0x3})
//	created by main.start in goroutine 1
func parseFunction(s string) string {
	if rest, ok := strings.CutPrefix(s, "created by "); ok {
		name, _, _ := strings.Cut(rest, " in goroutine ")
		return name
	}
	if strings.HasSuffix(s, ")") {
		if i := strings.LastIndex(s, "("); i > 0 {
			return s[:i]
		}
	}
	return s
}

// parseLocation parses "/path/to/file.go:42 +0x1d".
func parseLocation(s string) (string, int) {
	if i := strings.LastIndex(s, " +0x"); i >= 0 {
		s = s[:i]
	}
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return s, 0
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return s, 0
	}
	return s[:i], n
}

func trimPanicFrames(frames []*Frame) []*Frame {
	for i := len(frames) - 1; i >= 0; i-- {
		fn := frames[i].function
		if fn == "panic" || fn == "runtime.gopanic" {
			return frames[i+1:]
		}
	}
	return frames
}

// captureCallers records the caller's stack, skipping skip frames above the caller of captureCallers.
func captureCallers(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	// +2 skips runtime.Callers and captureCallers.
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// walk visits err and every error it wraps, depth first, until fn returns false.
func walk(err error, fn func(error) bool) bool {
	if err == nil {
		return true
	}
	if !fn(err) {
		return false
	}

	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return walk(u.Unwrap(), fn)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if !walk(e, fn) {
				return false
			}
		}
	}
	return true
}

// findFirst returns the first value in the wrap chain for which get reports ok.
func findFirst[T any](err error, get func(error) (T, bool)) (T, bool) {
	var (
		found T
		ok    bool
	)
	walk(err, func(e error) bool {
		found, ok = get(e)
		return !ok
	})
	return found, ok
}
