package inspector

import "errors"

var (
	// ErrInvalidLength is returned by Frame.FileLines when the requested length is not positive.
	ErrInvalidLength = errors.New("length cannot be lower or equal to 0")
)
