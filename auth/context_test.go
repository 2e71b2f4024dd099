package auth

import (
	"context"
	"testing"
)

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	if got := IdentityFromContext(ctx); got != nil {
		t.Errorf("IdentityFromContext(empty) = %v, want nil", got)
	}

	want := &Identity{Principal: "tenant-9", Roles: []string{"tenant"}}
	if got := IdentityFromContext(WithIdentity(ctx, want)); got != want {
		t.Errorf("IdentityFromContext() = %v, want %v", got, want)
	}
}

func TestForcePublicContext(t *testing.T) {
	ctx := context.Background()
	if ForcePublicFromContext(ctx) {
		t.Error("plain context should not be force-public")
	}
	if !ForcePublicFromContext(WithForcePublic(ctx)) {
		t.Error("WithForcePublic context should be force-public")
	}
}
