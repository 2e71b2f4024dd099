package property

import (
	"context"
	"time"

	"github.com/jonwraymond/rentdata/cache"
	"github.com/jonwraymond/rentdata/kv"
)

// LocalPrefix namespaces property records inside a shared kv.Store.
const LocalPrefix = "property:"

// LocalTier is the on-device property cache.
type LocalTier struct {
	store *kv.Prefixed
	ttl   time.Duration
	now   func() time.Time
}

// NewLocalTier creates a LocalTier over store. A zero ttl never expires.
func NewLocalTier(store kv.Store, ttl time.Duration, now func() time.Time) (*LocalTier, error) {
	p, err := kv.NewPrefixed(store, LocalPrefix)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &LocalTier{store: p, ttl: ttl, now: now}, nil
}

func localKey(class Class, id string) string {
	return string(class) + "/" + id
}

func (t *LocalTier) Name() Provenance { return ProvenanceLocal }
func (t *LocalTier) Stage() Status    { return StatusLoadingCache }

func (t *LocalTier) Attempt(ctx context.Context, a Attempt) Outcome {
	raw, ok, err := t.store.Get(ctx, localKey(a.Class, a.ID))
	if err != nil {
		return Outcome{Kind: KindMiss, Err: err}
	}
	if !ok {
		return Outcome{Kind: KindMiss}
	}
	entry, err := cache.Decode[Property](raw)
	if err != nil {
		_ = t.store.Remove(ctx, localKey(a.Class, a.ID))
		return Outcome{Kind: KindMiss, Err: err}
	}
	if t.ttl > 0 && !entry.Valid(t.now(), t.ttl) {
		return Outcome{Kind: KindMiss}
	}
	return hit(&entry.Data)
}

// Put replaces the cached record.
func (t *LocalTier) Put(ctx context.Context, class Class, p *Property) error {
	key := localKey(class, p.ID)
	raw, err := cache.Encode(cache.NewEntry(*p, key, t.now()))
	if err != nil {
		return err
	}
	return t.store.Set(ctx, key, raw)
}

// Remove deletes the cached record.
func (t *LocalTier) Remove(ctx context.Context, class Class, id string) error {
	return t.store.Remove(ctx, localKey(class, id))
}

// Ensure LocalTier implements Tier
var _ Tier = (*LocalTier)(nil)
