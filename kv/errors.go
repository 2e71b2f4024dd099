package kv

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNilStore indicates a nil Store was provided.
	ErrNilStore = errors.New("kv: store is nil")

	// ErrInvalidKey indicates an empty or malformed key.
	ErrInvalidKey = errors.New("kv: key is invalid")

	// ErrInvalidPrefix indicates an empty namespace prefix.
	ErrInvalidPrefix = errors.New("kv: prefix is invalid")
)
