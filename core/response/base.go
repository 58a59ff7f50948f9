package response

import (
	"net/http"

	"github.com/dmitrymomot/ouch/core/handler"
)

// Render executes resp against w and r. A failing response is turned into a plain 500
// unless the header has already gone out.
func Render(w http.ResponseWriter, r *http.Request, resp handler.Response) error {
	if resp == nil {
		return nil
	}
	err := resp(w, r)
	if err != nil && !HeadersSent(w) {
		http.Error(w, StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
	return err
}

// StringWithStatus creates a text/plain response.
func StringWithStatus(content string, status int) handler.Response {
	return BytesWithStatus([]byte(content), "text/plain; charset=utf-8", status)
}

// HTMLWithStatus creates a text/html response.
func HTMLWithStatus(content string, status int) handler.Response {
	return BytesWithStatus([]byte(content), "text/html; charset=utf-8", status)
}

// BytesWithStatus writes content with the given content type. A zero status means 200.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		writeStatus(w, status)
		if len(content) == 0 {
			return nil
		}
		_, err := w.Write(content)
		return err
	}
}

// writeStatus sends status unless the header is already out.
func writeStatus(w http.ResponseWriter, status int) {
	if HeadersSent(w) {
		return
	}
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}
