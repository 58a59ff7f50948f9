package inspector

import (
	"go/build"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// UnknownFile is the file name of frames whose source location could not be resolved.
const UnknownFile = "Unknown"

// Frame is a single stack trace entry.
// Identity fields are set once when the stack is parsed; only the comment list grows afterwards.
type Frame struct {
	file     string
	line     int
	column   int
	function string
	pkg      string
	typ      string
	method   string
	native   bool

	// roots are searched when file does not exist as recorded (e.g. -trimpath builds).
	roots []string

	mu       sync.Mutex
	contents string
	loaded   bool
	comments []Comment
}

// NewFrame creates a frame for the given source location.
// function is the fully qualified Go function name as reported by the runtime.
func NewFrame(file string, line int, function string) *Frame {
	if file == "" {
		file = UnknownFile
	}
	if line < 0 {
		line = 0
	}

	f := &Frame{
		file:     file,
		line:     line,
		function: function,
	}
	f.pkg, f.typ, f.method = splitFunctionName(function)
	f.native = isRuntimePackage(f.pkg)
	return f
}

// File returns the source file path or UnknownFile.
func (f *Frame) File() string { return f.file }

// Line returns the 1-based line number, or 0 when unknown.
func (f *Frame) Line() int { return f.line }

// Column returns the column number. The Go runtime does not report columns, so it is 0 unless
// the frame was built by a custom StackParser.
func (f *Frame) Column() int { return f.column }

// Function returns the fully qualified function name, e.g. "github.com/acme/app.(*Server).Handle".
func (f *Frame) Function() string { return f.function }

// ShortFunction returns the function name without its package path, e.g. "(*Server).Handle".
func (f *Frame) ShortFunction() string {
	if f.pkg == "" {
		return f.function
	}
	return strings.TrimPrefix(f.function, f.pkg+".")
}

// Package returns the import path of the frame's package.
func (f *Frame) Package() string { return f.pkg }

// Type returns the receiver type name for methods, e.g. "*Server", or "" for plain functions.
func (f *Frame) Type() string { return f.typ }

// Method returns the method name for methods, or "" for plain functions.
func (f *Frame) Method() string { return f.method }

// IsNative reports whether the frame belongs to the Go runtime.
func (f *Frame) IsNative() bool { return f.native }

// String formats the frame like a goroutine dump entry.
func (f *Frame) String() string {
	return f.function + "\n\t" + f.file + ":" + strconv.Itoa(f.line)
}

// FileContents returns the full contents of the frame's source file.
// It returns false when the file is unknown or cannot be found; this is not an error.
// A successful read is cached for the frame's lifetime.
func (f *Frame) FileContents() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loaded {
		return f.contents, true
	}
	if f.file == UnknownFile {
		return "", false
	}

	for _, path := range f.candidates() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.contents = string(data)
		f.loaded = true
		return f.contents, true
	}

	return "", false
}

// FileLines returns lines [start, start+length) of the frame's source file.
// Lines are 0-indexed and a negative start is treated as 0.
// It fails with ErrInvalidLength when length <= 0, and returns nil without error
// when the file contents are unavailable.
func (f *Frame) FileLines(start, length int) ([]string, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}

	contents, ok := f.FileContents()
	if !ok {
		return nil, nil
	}

	lines := strings.Split(contents, "\n")
	if start < 0 {
		start = 0
	}
	if start > len(lines) {
		start = len(lines)
	}
	end := min(start+length, len(lines))

	return lines[start:end], nil
}

// AddComment attaches a comment to the frame. An empty context is stored as DefaultCommentContext.
func (f *Frame) AddComment(text, context string) {
	if context == "" {
		context = DefaultCommentContext
	}

	f.mu.Lock()
	f.comments = append(f.comments, Comment{Text: text, Context: context})
	f.mu.Unlock()
}

// Comments returns the frame's comments in insertion order.
// A non-empty filter returns only comments whose context equals it.
func (f *Frame) Comments(filter string) []Comment {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Comment, 0, len(f.comments))
	for _, c := range f.comments {
		if filter == "" || c.Context == filter {
			out = append(out, c)
		}
	}
	return out
}

// candidates lists the paths tried when reading the source file.
func (f *Frame) candidates() []string {
	paths := []string{f.file}
	if filepath.IsAbs(f.file) {
		return paths
	}

	for _, root := range f.roots {
		paths = append(paths, filepath.Join(root, f.file))
	}
	if goroot := build.Default.GOROOT; goroot != "" {
		paths = append(paths, filepath.Join(goroot, "src", f.file))
	}
	return paths
}

// splitFunctionName splits a runtime function name into package path, receiver type and method.
//
//	github.com/acme/app.(*Server).Handle -> github.com/acme/app, *Server, Handle
//	github.com/acme/app.Server.Handle    -> github.com/acme/app, Server, Handle
//	github.com/acme/app.Run.func1        -> github.com/acme/app, "", ""
func splitFunctionName(name string) (pkg, typ, method string) {
	if name == "" {
		return "", "", ""
	}

	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return "", "", ""
	}
	dot += slash + 1
	pkg, sym := name[:dot], name[dot+1:]

	if strings.HasPrefix(sym, "(") {
		end := strings.Index(sym, ").")
		if end < 0 {
			return pkg, "", ""
		}
		typ = sym[1:end]
		method, _, _ = strings.Cut(sym[end+2:], ".")
		return pkg, typ, method
	}

	parts := strings.Split(sym, ".")
	if len(parts) < 2 || isClosureName(parts[1]) {
		return pkg, "", ""
	}
	return pkg, parts[0], parts[1]
}

// isClosureName reports whether s is a compiler-generated closure name such as "func1" or "gowrap2".
func isClosureName(s string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok || rest == "" {
			continue
		}
		if _, err := strconv.Atoi(rest); err == nil {
			return true
		}
	}
	return false
}

func isRuntimePackage(pkg string) bool {
	return pkg == "runtime" || strings.HasPrefix(pkg, "runtime/")
}
