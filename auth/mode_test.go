package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolveMode(t *testing.T) {
	yes := ProberFunc(func(context.Context) bool { return true })
	no := ProberFunc(func(context.Context) bool { return false })

	tests := []struct {
		name        string
		ctx         context.Context
		prober      Prober
		forcePublic bool
		want        Mode
	}{
		{"authenticated", context.Background(), yes, false, ModeAuthenticated},
		{"not authenticated", context.Background(), no, false, ModePublic},
		{"nil prober", context.Background(), nil, false, ModePublic},
		{"forced public", context.Background(), yes, true, ModePublic},
		{"context forced public", WithForcePublic(context.Background()), yes, false, ModePublic},
		{"public only", context.Background(), PublicOnly, false, ModePublic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveMode(tt.ctx, tt.prober, tt.forcePublic); got != tt.want {
				t.Errorf("ResolveMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextProber(t *testing.T) {
	p := ContextProber{}
	ctx := context.Background()

	if p.Authenticated(ctx) {
		t.Error("empty context should not be authenticated")
	}
	if !p.Authenticated(WithIdentity(ctx, &Identity{Principal: "u"})) {
		t.Error("context with principal should be authenticated")
	}
	expired := &Identity{Principal: "u", ExpiresAt: time.Now().Add(-time.Minute)}
	if p.Authenticated(WithIdentity(ctx, expired)) {
		t.Error("expired identity should not be authenticated")
	}
}

func TestMode_Validate(t *testing.T) {
	if err := ModePublic.Validate(); err != nil {
		t.Errorf("ModePublic.Validate() = %v", err)
	}
	if err := ModeAuthenticated.Validate(); err != nil {
		t.Errorf("ModeAuthenticated.Validate() = %v", err)
	}
	if err := Mode("admin").Validate(); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Mode(admin).Validate() = %v, want ErrInvalidMode", err)
	}
}
