package ouch

import "errors"

var (
	// ErrInvalidHandler is returned when registering a value that is neither a Handler nor a callback.
	ErrInvalidHandler = errors.New("argument to PushHandler must be a Handler or a callback function")

	// ErrNotCallable is returned when a callback handler is built from a value that is not a callback.
	ErrNotCallable = errors.New("argument to NewCallbackHandler must be a callback function")
)
