package response

import (
	"errors"
	"net/http"
)

// statusCode is implemented by errors that carry an HTTP status code.
type statusCode interface {
	StatusCode() int
}

// FromError converts err to an HTTPError. An HTTPError anywhere in the wrap chain is returned
// as is; otherwise the first StatusCode() found in the chain picks the status, defaulting to 500.
// The message is the standard status text, never err's message, so internals are not leaked.
func FromError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	return NewHTTPError(status)
}
