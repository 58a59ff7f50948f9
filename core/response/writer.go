package response

import "net/http"

// Writer wraps an http.ResponseWriter and records whether the header was written.
type Writer struct {
	http.ResponseWriter
	status  int
	written bool
}

// NewWriter wraps w. Wrapping a *Writer returns it unchanged.
func NewWriter(w http.ResponseWriter) *Writer {
	if rw, ok := w.(*Writer); ok {
		return rw
	}
	return &Writer{ResponseWriter: w}
}

// WriteHeader writes the status once; later calls are ignored.
func (w *Writer) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *Writer) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written reports whether the header was sent.
func (w *Writer) Written() bool {
	return w.written
}

// Status returns the status sent, or 0.
func (w *Writer) Status() int {
	return w.status
}

// Flush implements http.Flusher when the underlying writer does.
func (w *Writer) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// HeadersSent reports whether w is known to have written its header already.
// Writers that do not track this are assumed fresh.
func HeadersSent(w http.ResponseWriter) bool {
	if tw, ok := w.(interface{ Written() bool }); ok {
		return tw.Written()
	}
	return false
}
