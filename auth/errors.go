package auth

import "errors"

// Sentinel errors for session and mode resolution.
var (
	ErrMissingCredentials = errors.New("auth: missing credentials")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrTokenMalformed     = errors.New("auth: token malformed")
	ErrInvalidMode        = errors.New("auth: invalid mode")
)
