package config

import "errors"

var (
	// ErrInvalidBackend is returned for an unknown store backend.
	ErrInvalidBackend = errors.New("config: invalid store backend")

	// ErrInvalidBounds is returned when the bounding box is malformed.
	ErrInvalidBounds = errors.New("config: invalid bounding box")

	// ErrInvalidValue is returned for out-of-range numeric settings.
	ErrInvalidValue = errors.New("config: invalid value")
)
