package colour

import "errors"

var (
	// ErrInvalidInput reports a structurally unusable pixel buffer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration reports a configuration value outside its documented range.
	ErrConfiguration = errors.New("invalid configuration")
)
