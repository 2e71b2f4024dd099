package kv

import (
	"context"
	"strings"
)

// Store is a persistent string key-value store.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Atomicity: single-key writes are atomic; no multi-key transactions.
//   - Errors: Get returns ("", false, nil) on miss. Remove and MultiRemove
//     are idempotent and do not error on missing keys.
type Store interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key.
	Remove(ctx context.Context, key string) error

	// Keys lists every key in the store.
	Keys(ctx context.Context) ([]string, error)

	// MultiRemove deletes all keys.
	MultiRemove(ctx context.Context, keys []string) error
}

// ValidateKey rejects keys that no adapter can store.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, "\n\r\x00") {
		return ErrInvalidKey
	}
	return nil
}

// Prefixed scopes a Store to keys beginning with prefix.
//
// Keys passed in and returned are unprefixed.
type Prefixed struct {
	store  Store
	prefix string
}

// NewPrefixed returns a view of store restricted to prefix.
func NewPrefixed(store Store, prefix string) (*Prefixed, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if prefix == "" {
		return nil, ErrInvalidPrefix
	}
	return &Prefixed{store: store, prefix: prefix}, nil
}

// Prefix returns the namespace prefix.
func (p *Prefixed) Prefix() string {
	return p.prefix
}

func (p *Prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *Prefixed) Set(ctx context.Context, key, value string) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *Prefixed) Remove(ctx context.Context, key string) error {
	return p.store.Remove(ctx, p.prefix+key)
}

// Keys returns only keys inside the namespace, with the prefix stripped.
func (p *Prefixed) Keys(ctx context.Context) ([]string, error) {
	all, err := p.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for _, k := range all {
		if rest, ok := strings.CutPrefix(k, p.prefix); ok {
			keys = append(keys, rest)
		}
	}
	return keys, nil
}

func (p *Prefixed) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = p.prefix + k
	}
	return p.store.MultiRemove(ctx, full)
}

// Clear removes every key in the namespace.
func (p *Prefixed) Clear(ctx context.Context) error {
	keys, err := p.Keys(ctx)
	if err != nil {
		return err
	}
	return p.MultiRemove(ctx, keys)
}

// Ensure Prefixed implements Store
var _ Store = (*Prefixed)(nil)
