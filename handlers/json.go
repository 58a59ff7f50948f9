package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmitrymomot/ouch"
	"github.com/dmitrymomot/ouch/core/formatter"
	"github.com/dmitrymomot/ouch/core/response"
)

// JSONResponseHandler converts the error into a JSON payload:
//
//	{"error": {"type": "Error", "message": "boom", "file": "/app/main.go", "line": 12}}
//
// With a response sink it sends the payload and stops the chain; without one it passes the
// payload on as its output.
type JSONResponseHandler struct {
	onlyAjaxOrJSON bool
	returnFrames   bool
	sendResponse   bool
}

// JSONOption configures a JSONResponseHandler.
type JSONOption func(*JSONResponseHandler)

// OnlyForAjaxOrJSON restricts the handler to requests sent with X-Requested-With: XMLHttpRequest
// or accepting application/json. Other requests are skipped.
func OnlyForAjaxOrJSON() JSONOption {
	return func(h *JSONResponseHandler) { h.onlyAjaxOrJSON = true }
}

// ReturnFrames adds the stack trace to the payload.
func ReturnFrames() JSONOption {
	return func(h *JSONResponseHandler) { h.returnFrames = true }
}

// SendResponse controls whether the payload is written to the response sink. Default: true.
func SendResponse(send bool) JSONOption {
	return func(h *JSONResponseHandler) { h.sendResponse = send }
}

// NewJSONResponseHandler creates a JSON handler.
func NewJSONResponseHandler(opts ...JSONOption) *JSONResponseHandler {
	h := &JSONResponseHandler{sendResponse: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle implements ouch.Handler.
func (h *JSONResponseHandler) Handle(s *ouch.Scope, next ouch.Next) {
	if h.onlyAjaxOrJSON && !(isAjaxRequest(s.Request()) || wantsJSON(s.Request())) {
		next(nil, ouch.Continue)
		return
	}

	insp := s.Inspector()
	body, err := json.Marshal(formatter.Payload{Error: formatter.ExceptionData(insp, h.returnFrames)})
	if err != nil {
		next(err, ouch.Continue)
		return
	}

	if w := s.Response(); w != nil && h.sendResponse {
		_ = response.Render(w, s.Request(), response.RawJSONWithStatus(body, insp.Code()))
		next(nil, ouch.Quit)
		return
	}
	next(string(body), ouch.Continue)
}

func isAjaxRequest(r *http.Request) bool {
	return r != nil && strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// wantsJSON reports whether application/json is one of the accepted media types.
func wantsJSON(r *http.Request) bool {
	if r == nil {
		return false
	}
	for _, v := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(v, ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), "application/json") {
			return true
		}
	}
	return false
}
