package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/auth"
	"github.com/jonwraymond/rentdata/cache"
	"github.com/jonwraymond/rentdata/kv"
	"github.com/jonwraymond/rentdata/observe"
)

// PersistPrefix namespaces query entries inside a shared kv.Store.
const PersistPrefix = "query:"

const component = "query"

// Config configures a Cache.
type Config struct {
	// Executor runs requests against the API. Required.
	Executor api.Executor

	// Store is the persistent tier. Nil disables persistence.
	Store kv.Store

	// Prober decides the auth mode of each request.
	// Default: auth.ContextProber{}
	Prober auth.Prober

	// Keyer derives request identity keys.
	// Default: cache.NewDefaultKeyer()
	Keyer cache.Keyer

	// Policy sets TTL and stale-on-error behavior.
	// Default: cache.DefaultPolicy()
	Policy *cache.Policy

	// MemorySize bounds the memory tier.
	// Default: cache.DefaultMemorySize
	MemorySize int

	// FetchTimeout bounds a shared network execution. The execution outlives
	// any single caller's cancellation so joined callers still get a result.
	// Default: 30s
	FetchTimeout time.Duration

	// PersistTimeout bounds each background persistent write.
	// Default: 5s
	PersistTimeout time.Duration

	// Instrumentation records tier spans, metrics and logs.
	Instrumentation *observe.Instrumentation

	// Now overrides the clock (tests).
	Now func() time.Time
}

// Cache is the query cache service. Create one with New and share it.
type Cache struct {
	executor       api.Executor
	persisted      *kv.Prefixed
	prober         auth.Prober
	keyer          cache.Keyer
	policy         cache.Policy
	memory         *cache.MemoryTier[json.RawMessage]
	fetchTimeout   time.Duration
	persistTimeout time.Duration
	inst           *observe.Instrumentation
	now            func() time.Time

	group   singleflight.Group
	pending sync.WaitGroup

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a Cache.
func New(cfg Config) (*Cache, error) {
	if cfg.Executor == nil {
		return nil, ErrNilExecutor
	}
	c := &Cache{
		executor:       cfg.Executor,
		prober:         cfg.Prober,
		keyer:          cfg.Keyer,
		memory:         cache.NewMemoryTier[json.RawMessage](cfg.MemorySize),
		fetchTimeout:   cfg.FetchTimeout,
		persistTimeout: cfg.PersistTimeout,
		inst:           cfg.Instrumentation,
		now:            cfg.Now,
	}
	if cfg.Store != nil {
		p, err := kv.NewPrefixed(cfg.Store, PersistPrefix)
		if err != nil {
			return nil, err
		}
		c.persisted = p
	}
	if cfg.Policy != nil {
		c.policy = *cfg.Policy
	} else {
		c.policy = cache.DefaultPolicy()
	}
	if c.prober == nil {
		c.prober = auth.ContextProber{}
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if c.fetchTimeout <= 0 {
		c.fetchTimeout = 30 * time.Second
	}
	if c.persistTimeout <= 0 {
		c.persistTimeout = 5 * time.Second
	}
	if c.inst == nil {
		c.inst = observe.Nop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	s := Stats{Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}
	return s
}

// ClearAll empties both tiers. Counters are kept.
func (c *Cache) ClearAll(ctx context.Context) error {
	c.memory.Purge()
	if c.persisted == nil {
		return nil
	}
	return c.persisted.Clear(ctx)
}

// ClearByOperation removes every entry of one operation, in every auth mode.
func (c *Cache) ClearByOperation(ctx context.Context, operation string) error {
	if err := cache.ValidateOperation(operation); err != nil {
		return err
	}
	prefix := cache.OperationPrefix(operation)
	c.memory.RemovePrefix(prefix)
	if c.persisted == nil {
		return nil
	}

	keys, err := c.persisted.Keys(ctx)
	if err != nil {
		return fmt.Errorf("query: list persisted keys: %w", err)
	}
	var matched []string
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			matched = append(matched, k)
		}
	}
	return c.persisted.MultiRemove(ctx, matched)
}

// Wait blocks until in-flight network executions and background persistent
// writes have finished.
func (c *Cache) Wait() {
	c.pending.Wait()
}

func (c *Cache) persist(ctx context.Context, key string, entry cache.Entry[json.RawMessage]) {
	if c.persisted == nil {
		return
	}
	raw, err := cache.Encode(entry)
	if err != nil {
		c.inst.Logger().Warn(ctx, "query persist encode failed", observe.F("key", key), observe.Err(err))
		return
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.persistTimeout)
		defer cancel()
		if err := c.persisted.Set(wctx, key, raw); err != nil {
			c.inst.Logger().Warn(wctx, "query persist failed", observe.F("key", key), observe.Err(err))
		}
	}()
}

func (c *Cache) readPersisted(ctx context.Context, key string) (cache.Entry[json.RawMessage], bool) {
	if c.persisted == nil {
		return cache.Entry[json.RawMessage]{}, false
	}
	raw, ok, err := c.persisted.Get(ctx, key)
	if err != nil {
		c.inst.Logger().Warn(ctx, "query persisted read failed", observe.F("key", key), observe.Err(err))
		return cache.Entry[json.RawMessage]{}, false
	}
	if !ok {
		return cache.Entry[json.RawMessage]{}, false
	}
	entry, err := cache.Decode[json.RawMessage](raw)
	if err != nil {
		c.inst.Logger().Warn(ctx, "query persisted entry corrupt", observe.F("key", key), observe.Err(err))
		_ = c.persisted.Remove(ctx, key)
		return cache.Entry[json.RawMessage]{}, false
	}
	return entry, true
}
