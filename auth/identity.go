package auth

import (
	"slices"
	"time"
)

// Identity is the signed-in user read from the session token.
type Identity struct {
	Principal string
	Roles     []string
	Claims    map[string]any
	// ExpiresAt is zero for tokens without an exp claim.
	ExpiresAt time.Time
}

// HasRole reports whether role was granted, e.g. "tenant" or "landlord".
func (id *Identity) HasRole(role string) bool {
	return id != nil && slices.Contains(id.Roles, role)
}

// IsExpiredAt reports whether the identity is past ExpiresAt at now.
func (id *Identity) IsExpiredAt(now time.Time) bool {
	return id != nil && !id.ExpiresAt.IsZero() && !now.Before(id.ExpiresAt)
}

// IsExpired is IsExpiredAt against the wall clock.
func (id *Identity) IsExpired() bool {
	return id.IsExpiredAt(time.Now())
}

// IsAnonymous reports a missing identity or one without a principal.
func (id *Identity) IsAnonymous() bool {
	return id == nil || id.Principal == ""
}
