package config

import "errors"

// ErrParsing is returned when environment variables cannot be parsed into the target struct.
var ErrParsing = errors.New("failed to parse environment")
