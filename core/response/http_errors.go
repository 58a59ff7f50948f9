package response

import (
	"net/http"
	"strings"
)

// HTTPError is an error with an HTTP status and a machine-readable code.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewHTTPError returns the HTTPError for status with its standard text as message.
// Unknown statuses and statuses below 400 map to 500.
func NewHTTPError(status int) HTTPError {
	if status < http.StatusBadRequest || http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}
	return HTTPError{
		Status:  status,
		Code:    errorCode(status),
		Message: StatusText(status),
	}
}

func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode lets the inspector and other status-aware code read the status.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// StatusText is http.StatusText with overrides for codes whose standard text reads poorly
// on an error page. Unknown codes yield the text for 500.
func StatusText(status int) string {
	if status == http.StatusTeapot {
		return "I'm a teapot"
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// errorCode derives "not_found" from "Not Found".
func errorCode(status int) string {
	text := strings.ToLower(StatusText(status))
	text = strings.NewReplacer("'", "", "-", "_", " ", "_").Replace(text)
	return text
}

// Frequently used errors.
var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest)
	ErrUnauthorized        = NewHTTPError(http.StatusUnauthorized)
	ErrForbidden           = NewHTTPError(http.StatusForbidden)
	ErrNotFound            = NewHTTPError(http.StatusNotFound)
	ErrMethodNotAllowed    = NewHTTPError(http.StatusMethodNotAllowed)
	ErrConflict            = NewHTTPError(http.StatusConflict)
	ErrUnprocessableEntity = NewHTTPError(http.StatusUnprocessableEntity)
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests)
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError)
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable)
)
