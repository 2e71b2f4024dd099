package auth

import (
	"context"
	"fmt"
)

// Mode selects whether a request carries caller identity.
type Mode string

const (
	ModeAuthenticated Mode = "authenticated"
	ModePublic        Mode = "public"
)

// String returns the mode name used in cache keys.
func (m Mode) String() string {
	return string(m)
}

// Validate rejects unknown modes.
func (m Mode) Validate() error {
	switch m {
	case ModeAuthenticated, ModePublic:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
	}
}

// Prober reports whether a caller identity is currently resolvable.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: probing never fails; an unknown state is reported as false.
type Prober interface {
	Authenticated(ctx context.Context) bool
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context) bool

// Authenticated calls f.
func (f ProberFunc) Authenticated(ctx context.Context) bool {
	return f(ctx)
}

// ContextProber reports an identity attached with WithIdentity that is
// neither anonymous nor expired.
type ContextProber struct{}

// Authenticated checks the context identity.
func (ContextProber) Authenticated(ctx context.Context) bool {
	id := IdentityFromContext(ctx)
	return !id.IsAnonymous() && !id.IsExpired()
}

// PublicOnly is a Prober that never reports an identity.
var PublicOnly Prober = ProberFunc(func(context.Context) bool { return false })

// ResolveMode picks the mode for one request. forcePublic, or a context
// marked with WithForcePublic, always yields ModePublic; otherwise the prober
// decides. A nil prober means public.
func ResolveMode(ctx context.Context, p Prober, forcePublic bool) Mode {
	if forcePublic || ForcePublicFromContext(ctx) || p == nil {
		return ModePublic
	}
	if p.Authenticated(ctx) {
		return ModeAuthenticated
	}
	return ModePublic
}

// Ensure ContextProber implements Prober
var _ Prober = ContextProber{}
