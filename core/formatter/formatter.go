// Package formatter renders an inspected error as plain text or as the data structure
// behind the JSON error payload.
package formatter

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ouch/core/inspector"
)

// ErrorData is the "error" object of the JSON payload.
type ErrorData struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	File    string      `json:"file"`
	Line    int         `json:"line"`
	Trace   []FrameData `json:"trace,omitempty"`
}

// FrameData is one entry of ErrorData.Trace.
type FrameData struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
	Class    string `json:"class"`
}

// Payload wraps ErrorData under the "error" key.
type Payload struct {
	Error ErrorData `json:"error"`
}

// ExceptionPlain returns the error name, message and stack as text.
func ExceptionPlain(insp *inspector.Inspector) string {
	var b strings.Builder
	b.WriteString(insp.ExceptionName())
	if msg := insp.ExceptionMessage(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	for _, f := range insp.Frames() {
		b.WriteString("\n")
		b.WriteString(f.String())
	}
	return b.String()
}

// ExceptionPlainHTML returns ExceptionPlain escaped for an HTML page, with line breaks
// as <br> and indentation kept as non-breaking spaces.
func ExceptionPlainHTML(insp *inspector.Inspector) string {
	plain := templ.EscapeString(ExceptionPlain(insp))
	plain = strings.NewReplacer("\n", "<br>", "\t", "    ").Replace(plain)
	plain = strings.ReplaceAll(plain, "  ", " &nbsp;")
	return plain + "\n"
}

// ExceptionData builds the JSON payload data. File and line point at the origin frame,
// the first frame outside the Go runtime. The trace is included only when withFrames is set.
func ExceptionData(insp *inspector.Inspector, withFrames bool) ErrorData {
	data := ErrorData{
		Type:    insp.ExceptionName(),
		Message: insp.ExceptionMessage(),
		File:    inspector.UnknownFile,
	}
	if origin := insp.OriginFrame(); origin != nil {
		data.File = origin.File()
		data.Line = origin.Line()
	}

	if withFrames {
		frames := insp.Frames()
		data.Trace = make([]FrameData, 0, len(frames))
		for _, f := range frames {
			data.Trace = append(data.Trace, FrameData{
				File:     f.File(),
				Line:     f.Line(),
				Function: f.Function(),
				Class:    f.Type(),
			})
		}
	}
	return data
}
