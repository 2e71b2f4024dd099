package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/rentdata/cache"
	"github.com/jonwraymond/rentdata/kv"
	"github.com/jonwraymond/rentdata/observe"
)

const component = "location"

// PersistPrefix namespaces the directory inside a shared kv.Store.
const PersistPrefix = "location:"

const directoryKey = "directory"

// Config configures a Cache.
type Config struct {
	Source Source
	Store  kv.Store

	// TTL is how long a persisted directory is reused.
	// Default: cache.DirectoryPolicy().DefaultTTL (30 days)
	TTL time.Duration

	// FetchTimeout bounds a shared refresh, which is not cancelled when the
	// caller that started it gives up.
	// Default: 30s
	FetchTimeout time.Duration

	Instrumentation *observe.Instrumentation
	Now             func() time.Time
}

// Cache serves the location directory.
type Cache struct {
	source Source
	store  *kv.Prefixed
	ttl     time.Duration
	timeout time.Duration
	inst    *observe.Instrumentation
	now     func() time.Time
	group   singleflight.Group
}

// New creates a Cache.
func New(cfg Config) (*Cache, error) {
	if cfg.Source == nil {
		return nil, ErrNilSource
	}
	if cfg.Store == nil {
		return nil, ErrNilStore
	}
	p, err := kv.NewPrefixed(cfg.Store, PersistPrefix)
	if err != nil {
		return nil, err
	}
	if cfg.TTL <= 0 {
		cfg.TTL = cache.DirectoryPolicy().DefaultTTL
	}
	if cfg.Instrumentation == nil {
		cfg.Instrumentation = observe.Nop()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Cache{
		source:  cfg.Source,
		store:   p,
		ttl:     cfg.TTL,
		timeout: cfg.FetchTimeout,
		inst:    cfg.Instrumentation,
		now:     cfg.Now,
	}, nil
}

// Fetch returns the directory. Concurrent callers share one refresh.
func (c *Cache) Fetch(ctx context.Context) (Directory, error) {
	ch := c.group.DoChan(directoryKey, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(Directory), nil
	}
}

func (c *Cache) fetch(ctx context.Context) (Directory, error) {
	persisted, have := c.load(ctx)
	if have && persisted.Valid(c.now(), c.ttl) {
		c.inst.Metrics().RecordLookup(ctx, component, true)
		return persisted.Data, nil
	}
	c.inst.Metrics().RecordLookup(ctx, component, false)

	var dir Directory
	_, err := c.inst.Tier(ctx, observe.TierMeta{Component: component, Tier: "source"}, func(ctx context.Context) (observe.Outcome, error) {
		var err error
		dir, err = c.source.Directory(ctx)
		if err != nil {
			return observe.OutcomeError, err
		}
		return observe.OutcomeHit, nil
	})
	if err != nil {
		if have {
			c.inst.Logger().Warn(ctx, "serving persisted location directory",
				observe.F("age", persisted.Age(c.now()).String()), observe.F("error", err.Error()))
			return persisted.Data, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	raw, err := cache.Encode(cache.NewEntry(dir, directoryKey, c.now()))
	if err == nil {
		err = c.store.Set(ctx, directoryKey, raw)
	}
	if err != nil {
		c.inst.Logger().Warn(ctx, "persist location directory failed", observe.F("error", err.Error()))
	}
	return dir, nil
}

func (c *Cache) load(ctx context.Context) (cache.Entry[Directory], bool) {
	raw, ok, err := c.store.Get(ctx, directoryKey)
	if err != nil || !ok {
		return cache.Entry[Directory]{}, false
	}
	entry, err := cache.Decode[Directory](raw)
	if err != nil {
		if errors.Is(err, cache.ErrCorruptEntry) {
			_ = c.store.Remove(ctx, directoryKey)
		}
		return cache.Entry[Directory]{}, false
	}
	return entry, true
}

// Clear removes the persisted directory.
func (c *Cache) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}
