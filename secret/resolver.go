package secret

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

const refPrefix = "secretref:"

// Resolver expands environment references and resolves secret refs.
type Resolver struct {
	providers map[string]Provider
	lookup    LookupFunc
	strict    bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup replaces the environment used for ${VAR} expansion.
func WithLookup(lookup LookupFunc) Option {
	return func(r *Resolver) { r.lookup = lookup }
}

// WithStrict makes empty provider values an error.
func WithStrict() Option {
	return func(r *Resolver) { r.strict = true }
}

// WithProvider registers p under p.Name(), replacing any earlier one.
func WithProvider(p Provider) Option {
	return func(r *Resolver) { r.providers[p.Name()] = p }
}

// NewResolver creates a Resolver. With no WithProvider options the env
// provider is registered.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{providers: map[string]Provider{}}
	for _, o := range opts {
		o(r)
	}
	if r.lookup == nil {
		r.lookup = os.LookupEnv
	}
	if len(r.providers) == 0 {
		r.providers["env"] = EnvProvider{Lookup: r.lookup}
	}
	return r
}

// ParseRef splits a whole-value reference "secretref:<provider>:<ref>".
func ParseRef(value string) (provider, ref string, ok bool) {
	rest, found := strings.CutPrefix(value, refPrefix)
	if !found {
		return "", "", false
	}
	provider, ref, found = strings.Cut(rest, ":")
	if !found || provider == "" || ref == "" {
		return "", "", false
	}
	return provider, ref, true
}

var inlineRef = regexp.MustCompile(`secretref:([^:\s]+):(\S+)`)

// Resolve expands value and replaces every secret reference it contains.
func (r *Resolver) Resolve(ctx context.Context, value string) (string, error) {
	expanded, err := Expand(value, r.lookup)
	if err != nil {
		return "", err
	}
	if provider, ref, ok := ParseRef(expanded); ok {
		return r.resolveOne(ctx, provider, ref)
	}

	var firstErr error
	out := inlineRef.ReplaceAllStringFunc(expanded, func(m string) string {
		if firstErr != nil {
			return m
		}
		sub := inlineRef.FindStringSubmatch(m)
		v, err := r.resolveOne(ctx, sub[1], sub[2])
		if err != nil {
			firstErr = err
			return m
		}
		return v
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// ResolveInPlace resolves each named field. Empty fields are left alone.
func (r *Resolver) ResolveInPlace(ctx context.Context, fields map[string]*string) error {
	for name, p := range fields {
		if p == nil || *p == "" {
			continue
		}
		v, err := r.Resolve(ctx, *p)
		if err != nil {
			return fmt.Errorf("secret: resolve %s: %w", name, err)
		}
		*p = v
	}
	return nil
}

func (r *Resolver) resolveOne(ctx context.Context, provider, ref string) (string, error) {
	p, ok := r.providers[provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	v, err := p.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	if r.strict && v == "" {
		return "", fmt.Errorf("%w: %s:%s", ErrEmptySecret, provider, ref)
	}
	return v, nil
}
