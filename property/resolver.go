package property

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/rentdata/kv"
	"github.com/jonwraymond/rentdata/observe"
	"github.com/jonwraymond/rentdata/query"
)

// DefaultMaxRetries is the retry ceiling of the authoritative tier.
const DefaultMaxRetries = 5

const component = "property"

// Config configures a Resolver.
type Config struct {
	// Queries is the query cache used by the origin and API tiers. Required.
	Queries *query.Cache

	// Store backs the local tier.
	// Default: kv.NewMemoryStore()
	Store kv.Store

	// LocalTTL expires local records. Zero keeps them until overwritten.
	LocalTTL time.Duration

	// EdgeBaseURL is the CDN root. Empty omits the edge tier.
	EdgeBaseURL string

	// HTTPClient is used for edge lookups.
	// Default: &http.Client{Timeout: 10s}
	HTTPClient *http.Client

	// Operations maps each class to its API call.
	// Default: DefaultOperations()
	Operations map[Class]Operation

	// MaxRetries is the retry ceiling.
	// Default: DefaultMaxRetries
	MaxRetries int

	// RefreshTimeout bounds each background refresh.
	// Default: 15s
	RefreshTimeout time.Duration

	// Instrumentation records tier spans, metrics and logs.
	Instrumentation *observe.Instrumentation

	// Now overrides the clock (tests).
	Now func() time.Time
}

type step struct {
	tier      Tier
	writeBack bool
}

type chain struct {
	steps             []step
	backgroundRefresh bool
}

// Resolver resolves properties through per-class tier chains.
type Resolver struct {
	chains         map[Class]chain
	local          *LocalTier
	edge           *EdgeTier
	maxRetries     int
	refreshTimeout time.Duration
	inst           *observe.Instrumentation

	refreshes sync.WaitGroup
}

// NewResolver creates a Resolver with the booking and rental chains:
//
//	booking: local (background refresh), edge, api
//	rental:  local, edge, origin, api
func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.Queries == nil {
		return nil, ErrNilQueryCache
	}
	if cfg.Store == nil {
		cfg.Store = kv.NewMemoryStore()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Operations == nil {
		cfg.Operations = DefaultOperations()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 15 * time.Second
	}
	if cfg.Instrumentation == nil {
		cfg.Instrumentation = observe.Nop()
	}

	local, err := NewLocalTier(cfg.Store, cfg.LocalTTL, cfg.Now)
	if err != nil {
		return nil, err
	}
	r := &Resolver{
		local:          local,
		maxRetries:     cfg.MaxRetries,
		refreshTimeout: cfg.RefreshTimeout,
		inst:           cfg.Instrumentation,
	}
	if strings.TrimSpace(cfg.EdgeBaseURL) != "" {
		r.edge = NewEdgeTier(cfg.EdgeBaseURL, cfg.HTTPClient)
	}
	apiTier := NewAPITier(cfg.Queries, cfg.Operations)
	origin := NewOriginTier(cfg.Queries, cfg.Operations)

	booking := chain{backgroundRefresh: r.edge != nil}
	booking.steps = append(booking.steps, step{tier: local})
	if r.edge != nil {
		booking.steps = append(booking.steps, step{tier: r.edge, writeBack: true})
	}
	booking.steps = append(booking.steps, step{tier: apiTier, writeBack: true})

	rental := chain{}
	rental.steps = append(rental.steps, step{tier: local})
	if r.edge != nil {
		rental.steps = append(rental.steps, step{tier: r.edge}, step{tier: origin, writeBack: true})
	}
	rental.steps = append(rental.steps, step{tier: apiTier})

	r.chains = map[Class]chain{ClassBooking: booking, ClassRental: rental}
	return r, nil
}

// Tiers returns the tier order of a class.
func (r *Resolver) Tiers(class Class) []Provenance {
	c, ok := r.chains[class]
	if !ok {
		return nil
	}
	names := make([]Provenance, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.tier.Name()
	}
	return names
}

// Resolve runs one pass over the class chain, updating state.
func (r *Resolver) Resolve(ctx context.Context, class Class, id string, state *FetchState) Result {
	if state == nil {
		state = &FetchState{}
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Result{Status: StatusFailed, Err: ErrInvalidID}
	}
	c, ok := r.chains[class]
	if !ok {
		return Result{Status: StatusFailed, Err: fmt.Errorf("%w: %q", ErrUnknownClass, class)}
	}

	a := Attempt{Class: class, ID: id}
	attempts := 0
	for _, s := range c.steps {
		attempts++
		out := r.attempt(ctx, s, a)

		switch out.Kind {
		case KindHit:
			if s.writeBack {
				if err := r.local.Put(ctx, class, out.Property); err != nil {
					r.inst.Logger().Warn(ctx, "property write-back failed",
						observe.F("class", string(class)), observe.F("id", id), observe.Err(err))
				}
			}
			if s.tier.Name() == ProvenanceLocal && c.backgroundRefresh {
				r.refresh(ctx, a)
			}
			state.Reset()
			return Result{
				Property:   out.Property,
				Provenance: s.tier.Name(),
				Status:     StatusResolved,
				Attempts:   attempts,
			}

		case KindGone:
			_ = r.local.Remove(ctx, class, id)
			err := ErrGone
			if out.Err != nil {
				err = fmt.Errorf("%w: %w", ErrGone, out.Err)
			}
			return Result{
				Provenance: s.tier.Name(),
				Status:     StatusFailed,
				Reason:     ReasonGone,
				Attempts:   attempts,
				Err:        err,
			}

		case KindFailed:
			return r.fail(state, out.Err, attempts)

		case KindMiss:
			if out.NotFound {
				a.EdgeNotFound = true
			}
		}
	}
	return r.fail(state, fmt.Errorf("%w: no tier produced a result", ErrRetryable), attempts)
}

func (r *Resolver) attempt(ctx context.Context, s step, a Attempt) Outcome {
	var out Outcome
	meta := observe.TierMeta{Component: component, Tier: string(s.tier.Name())}
	_, _ = r.inst.Tier(ctx, meta, func(ctx context.Context) (observe.Outcome, error) {
		out = s.tier.Attempt(ctx, a)
		switch out.Kind {
		case KindHit:
			return observe.OutcomeHit, nil
		case KindGone:
			return observe.OutcomeGone, nil
		case KindFailed:
			return observe.OutcomeError, out.Err
		}
		if out.Err != nil {
			// Non-404 edge and origin errors fall through as misses.
			r.inst.Logger().Warn(ctx, "property tier error treated as miss",
				observe.F("tier", meta.Tier), observe.F("kind", string(Classify(out.Err))),
				observe.F("id", a.ID), observe.Err(out.Err))
		}
		return observe.OutcomeMiss, nil
	})
	return out
}

func (r *Resolver) fail(state *FetchState, err error, attempts int) Result {
	state.RetryCount++
	state.LastError = Classify(err)
	if state.RetryCount >= r.maxRetries {
		return Result{
			Status:   StatusFailed,
			Reason:   ReasonExhausted,
			Attempts: attempts,
			Err:      fmt.Errorf("%w after %d attempts: %w", ErrExhausted, state.RetryCount, err),
		}
	}
	return Result{
		Status:    StatusFailed,
		Retryable: true,
		Attempts:  attempts,
		Err:       fmt.Errorf("%w: %w", ErrRetryable, err),
	}
}

// refresh re-reads the edge record in the background so the next read of the
// local tier is current. The caller's result is already fixed.
func (r *Resolver) refresh(ctx context.Context, a Attempt) {
	if r.edge == nil {
		return
	}
	r.refreshes.Add(1)
	go func() {
		defer r.refreshes.Done()
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.refreshTimeout)
		defer cancel()

		out := r.edge.Attempt(rctx, a)
		switch out.Kind {
		case KindHit:
			if err := r.local.Put(rctx, a.Class, out.Property); err != nil {
				r.inst.Logger().Warn(rctx, "property refresh write failed", observe.F("id", a.ID), observe.Err(err))
			}
		case KindGone:
			_ = r.local.Remove(rctx, a.Class, a.ID)
		default:
			if out.Err != nil {
				r.inst.Logger().Debug(rctx, "property refresh skipped", observe.F("id", a.ID), observe.Err(out.Err))
			}
		}
	}()
}

// Invalidate removes the local record of a property.
func (r *Resolver) Invalidate(ctx context.Context, class Class, id string) error {
	if _, ok := r.chains[class]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	return r.local.Remove(ctx, class, id)
}

// Wait blocks until background refreshes have finished.
func (r *Resolver) Wait() {
	r.refreshes.Wait()
}
