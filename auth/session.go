package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionConfig configures a TokenSession.
type SessionConfig struct {
	// PrincipalClaim is the claim holding the user principal.
	// Default: "sub"
	PrincipalClaim string

	// RolesClaim is the claim holding user roles (optional).
	RolesClaim string

	// Leeway treats tokens as expired this long before their exp claim so a
	// request is not sent with a token that expires in flight.
	// Default: 0
	Leeway time.Duration

	// Now overrides the clock (tests).
	Now func() time.Time
}

// TokenSession holds the access token handed over by the host's auth layer.
//
// The token signature is not verified here; the API does that. The session
// only reads the claims to decide whether the token is present and unexpired,
// which is what the authenticated-mode probe needs.
type TokenSession struct {
	config SessionConfig
	parser *jwt.Parser

	mu       sync.RWMutex
	token    string
	identity *Identity
}

// NewTokenSession creates an empty session.
func NewTokenSession(config SessionConfig) *TokenSession {
	if config.PrincipalClaim == "" {
		config.PrincipalClaim = "sub"
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &TokenSession{
		config: config,
		parser: jwt.NewParser(),
	}
}

// Set installs a new access token, replacing any previous one.
func (s *TokenSession) Set(token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return ErrMissingCredentials
	}
	id, err := s.parse(token)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.identity = id
	s.mu.Unlock()
	return nil
}

// Clear signs the session out.
func (s *TokenSession) Clear() {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()
}

// Identity returns the principal behind the current token, or nil.
func (s *TokenSession) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Authenticated reports whether an unexpired token is held.
func (s *TokenSession) Authenticated(_ context.Context) bool {
	s.mu.RLock()
	id := s.identity
	s.mu.RUnlock()
	if id.IsAnonymous() {
		return false
	}
	return !id.IsExpiredAt(s.config.Now().Add(s.config.Leeway))
}

// Token returns the current bearer token.
func (s *TokenSession) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return "", ErrMissingCredentials
	}
	if !s.Authenticated(ctx) {
		return "", ErrTokenExpired
	}
	return token, nil
}

func (s *TokenSession) parse(token string) (*Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenMalformed
	}

	id := &Identity{Claims: map[string]any(claims)}
	if p, ok := claims[s.config.PrincipalClaim].(string); ok {
		id.Principal = p
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	if s.config.RolesClaim != "" {
		id.Roles = stringSlice(claims[s.config.RolesClaim])
	}
	return id, nil
}

func stringSlice(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.Fields(val)
	default:
		return nil
	}
}

// Ensure TokenSession implements Prober and TokenSource
var (
	_ Prober      = (*TokenSession)(nil)
	_ TokenSource = (*TokenSession)(nil)
)
