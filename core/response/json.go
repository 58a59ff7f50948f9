package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/ouch/core/handler"
)

// JSONWithStatus encodes v as application/json. A zero status means 200, or 204 for nil v.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
			if v == nil {
				status = http.StatusNoContent
			}
		}
		writeStatus(w, status)

		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}

// RawJSONWithStatus writes an already encoded JSON document.
func RawJSONWithStatus(body []byte, status int) handler.Response {
	return BytesWithStatus(body, "application/json", status)
}
