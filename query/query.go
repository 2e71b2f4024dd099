package query

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/auth"
	"github.com/jonwraymond/rentdata/cache"
	"github.com/jonwraymond/rentdata/observe"
)

// Query returns the response for req, from cache when a valid entry exists.
func (c *Cache) Query(ctx context.Context, req api.Request, opts Options) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	mode := auth.ResolveMode(ctx, c.prober, opts.ForcePublic)
	key, err := c.keyer.Key(req.Operation, mode.String(), req.Variables)
	if err != nil {
		return Result{}, err
	}
	ttl := c.policy.EffectiveTTL(opts.TTL)

	if !opts.NetworkOnly {
		if res, ok := c.lookup(ctx, key, ttl); ok {
			c.hits.Add(1)
			c.inst.Metrics().RecordLookup(ctx, component, true)
			return res, nil
		}
	}
	c.misses.Add(1)
	c.inst.Metrics().RecordLookup(ctx, component, false)

	res, err := c.fetch(ctx, key, req, mode)
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}
	// Content reported gone is authoritative and never masked by stale data.
	if api.IsNotFound(err) || !c.policy.StaleOnError {
		return Result{}, err
	}
	if stale, ok := c.stale(ctx, key); ok {
		c.inst.Logger().Warn(ctx, "query serving stale entry",
			observe.F("operation", req.Operation), observe.F("key", key), observe.Err(err))
		return stale, nil
	}
	return Result{}, fmt.Errorf("%w: %w", ErrNoData, err)
}

// Mutate executes req fresh in the resolved auth mode. No tier is read or
// written.
func (c *Cache) Mutate(ctx context.Context, req api.Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	mode := auth.ResolveMode(ctx, c.prober, false)
	resp, err := c.executor.Execute(ctx, req, mode)
	if err != nil {
		return Result{}, err
	}
	return Result{Data: resp.Data, Source: SourceNetwork, StoredAt: c.now()}, nil
}

func (c *Cache) lookup(ctx context.Context, key string, ttl time.Duration) (Result, bool) {
	now := c.now()
	if entry, ok := c.memory.Get(key); ok && entry.Valid(now, ttl) {
		return Result{Data: entry.Data, Source: SourceMemory, Key: key, StoredAt: entry.Timestamp}, true
	}

	var res Result
	_, _ = c.inst.Tier(ctx, observe.TierMeta{Component: component, Tier: "persistent"}, func(ctx context.Context) (observe.Outcome, error) {
		entry, ok := c.readPersisted(ctx, key)
		if !ok || !entry.Valid(now, ttl) {
			return observe.OutcomeMiss, nil
		}
		c.memory.Set(key, entry)
		res = Result{Data: entry.Data, Source: SourcePersistent, Key: key, StoredAt: entry.Timestamp}
		return observe.OutcomeHit, nil
	})
	return res, res.Source != ""
}

func (c *Cache) fetch(ctx context.Context, key string, req api.Request, mode auth.Mode) (Result, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		c.pending.Add(1)
		defer c.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		var res Result
		_, err := c.inst.Tier(ctx, observe.TierMeta{Component: component, Tier: "network"}, func(ctx context.Context) (observe.Outcome, error) {
			resp, err := c.executor.Execute(ctx, req, mode)
			if err != nil {
				if api.IsNotFound(err) {
					return observe.OutcomeGone, err
				}
				return observe.OutcomeError, err
			}
			if !resp.HasData() {
				return observe.OutcomeError, ErrEmptyResponse
			}
			entry := cache.NewEntry(resp.Data, key, c.now())
			c.memory.Set(key, entry)
			c.persist(ctx, key, entry)
			res = Result{Data: entry.Data, Source: SourceNetwork, Key: key, StoredAt: entry.Timestamp}
			return observe.OutcomeHit, nil
		})
		return res, err
	})
	// A caller that gives up only discards its copy of the result.
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

// stale returns the last entry for key regardless of age. A persisted entry
// is consumed by this read.
func (c *Cache) stale(ctx context.Context, key string) (Result, bool) {
	if entry, ok := c.memory.Peek(key); ok {
		return Result{Data: entry.Data, Source: SourceStale, Key: key, StoredAt: entry.Timestamp}, true
	}
	entry, ok := c.readPersisted(ctx, key)
	if !ok {
		return Result{}, false
	}
	if err := c.persisted.Remove(ctx, key); err != nil {
		c.inst.Logger().Warn(ctx, "query stale discard failed", observe.F("key", key), observe.Err(err))
	}
	return Result{Data: entry.Data, Source: SourceStale, Key: key, StoredAt: entry.Timestamp}, true
}
