package auth

import "context"

type (
	identityKey    struct{}
	forcePublicKey struct{}
)

// WithIdentity attaches id for ContextProber.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the attached identity or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// WithForcePublic marks every request made with ctx as public regardless of
// the session state.
func WithForcePublic(ctx context.Context) context.Context {
	return context.WithValue(ctx, forcePublicKey{}, true)
}

// ForcePublicFromContext reports whether ctx was marked by WithForcePublic.
func ForcePublicFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(forcePublicKey{}).(bool)
	return v
}
