package geocode

import (
	"context"
	"time"

	"github.com/jonwraymond/rentdata/observe"
	"github.com/jonwraymond/rentdata/resilience"
)

const component = "geocode"

// Defaults.
const (
	DefaultCountry        = "Tanzania"
	DefaultProviderBDelay = time.Second
	DefaultAttemptTimeout = 5 * time.Second
)

// Config configures a Resolver. A nil provider omits its tier.
type Config struct {
	ProviderA Provider
	ProviderB Provider

	// GuardA and GuardB wrap provider calls.
	// Default: a breaker and per-attempt timeout; B also gets a shared
	// one-request-per-second limiter.
	GuardA *resilience.Guard
	GuardB *resilience.Guard

	// ProviderBDelay is the pause between consecutive provider B attempts
	// within one resolution.
	// Default: DefaultProviderBDelay
	ProviderBDelay time.Duration

	// AttemptTimeout bounds each provider call of the default guards.
	// Default: DefaultAttemptTimeout
	AttemptTimeout time.Duration

	// Sleep implements the provider B delay.
	// Default: resilience.Sleep
	Sleep resilience.SleepFunc

	// Country is appended to every query variant.
	// Default: DefaultCountry
	Country string

	// Bounds filters provider B candidates.
	// Default: TanzaniaBounds
	Bounds *BoundingBox

	// Gazetteer is the local table.
	// Default: DefaultGazetteer()
	Gazetteer *Gazetteer

	// Default is the last-resort coordinate.
	// Default: DarEsSalaam
	Default *Coordinates

	Instrumentation *observe.Instrumentation
}

// Resolver resolves locations through the tier chain.
type Resolver struct {
	tiers     []Tier
	syncTiers []Tier
	inst      *observe.Instrumentation
}

// NewResolver builds the chain. Tiers whose provider is nil are left out.
func NewResolver(cfg Config) *Resolver {
	if cfg.ProviderBDelay <= 0 {
		cfg.ProviderBDelay = DefaultProviderBDelay
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = DefaultAttemptTimeout
	}
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	if cfg.Bounds == nil {
		b := TanzaniaBounds
		cfg.Bounds = &b
	}
	if cfg.Gazetteer == nil {
		cfg.Gazetteer = DefaultGazetteer()
	}
	if cfg.Default == nil {
		c := DarEsSalaam
		cfg.Default = &c
	}
	if cfg.Instrumentation == nil {
		cfg.Instrumentation = observe.Nop()
	}
	inst := cfg.Instrumentation
	country := cfg.Country

	saved := savedTier{}
	gaz := gazetteerTier{g: cfg.Gazetteer}
	fallback := fallbackTier{at: *cfg.Default}

	r := &Resolver{inst: inst}
	r.tiers = append(r.tiers, saved)
	if cfg.ProviderA != nil {
		guard := cfg.GuardA
		if guard == nil {
			guard = defaultGuard("providerA", cfg.AttemptTimeout, nil, inst)
		}
		r.tiers = append(r.tiers, &providerTier{
			source:   SourceProviderA,
			provider: cfg.ProviderA,
			guard:    guard,
			variants: func(loc Location) []string { return Variants(loc, country) },
		})
	}
	if cfg.ProviderB != nil {
		guard := cfg.GuardB
		if guard == nil {
			limiter := resilience.NewLimiter(resilience.LimiterConfig{Interval: time.Second})
			guard = defaultGuard("providerB", cfg.AttemptTimeout, limiter, inst)
		}
		r.tiers = append(r.tiers, &providerTier{
			source:   SourceProviderB,
			provider: cfg.ProviderB,
			guard:    guard,
			variants: func(loc Location) []string { return DistrictVariants(loc, country) },
			delay:    cfg.ProviderBDelay,
			sleep:    cfg.Sleep,
			bounds:   cfg.Bounds,
		})
	}
	r.tiers = append(r.tiers, gaz, fallback)
	r.syncTiers = []Tier{saved, gaz, fallback}
	return r
}

func defaultGuard(name string, timeout time.Duration, limiter *resilience.Limiter, inst *observe.Instrumentation) *resilience.Guard {
	breaker := resilience.NewBreaker(resilience.BreakerConfig{
		Name: name,
		OnStateChange: func(name string, from, to resilience.State) {
			inst.Logger().Warn(context.Background(), "geocode provider breaker",
				observe.F("provider", name), observe.F("from", from.String()), observe.F("to", to.String()))
		},
	})
	return resilience.NewGuard(resilience.GuardConfig{
		Name:    name,
		Limiter: limiter,
		Breaker: breaker,
		Timeout: timeout,
	})
}

// Breakers returns the circuit breakers guarding the configured providers.
func (r *Resolver) Breakers() []*resilience.Breaker {
	var out []*resilience.Breaker
	for _, t := range r.tiers {
		if pt, ok := t.(*providerTier); ok && pt.guard.Breaker() != nil {
			out = append(out, pt.guard.Breaker())
		}
	}
	return out
}

// Tiers returns the chain order.
func (r *Resolver) Tiers() []Source {
	out := make([]Source, len(r.tiers))
	for i, t := range r.tiers {
		out[i] = t.Name()
	}
	return out
}

// Resolve walks every tier. It always returns a result.
func (r *Resolver) Resolve(ctx context.Context, loc Location, saved *Coordinates) Result {
	return r.run(ctx, r.tiers, Input{Location: loc, Saved: saved})
}

// ResolveSync uses only the saved, gazetteer and fallback tiers. It performs
// no I/O.
func (r *Resolver) ResolveSync(loc Location, saved *Coordinates) Result {
	return r.run(context.Background(), r.syncTiers, Input{Location: loc, Saved: saved})
}

func (r *Resolver) run(ctx context.Context, tiers []Tier, in Input) Result {
	for _, t := range tiers {
		var (
			res Result
			ok  bool
		)
		_, _ = r.inst.Tier(ctx, observe.TierMeta{Component: component, Tier: string(t.Name())}, func(ctx context.Context) (observe.Outcome, error) {
			var err error
			res, ok, err = t.Attempt(ctx, in)
			switch {
			case resilience.IsTransient(err):
				// Breaker open, limiter wait exceeded or attempt timed out.
				return observe.OutcomeSkipped, nil
			case err != nil:
				return observe.OutcomeError, err
			case ok:
				return observe.OutcomeHit, nil
			default:
				return observe.OutcomeMiss, nil
			}
		})
		if ok {
			return res
		}
	}
	// Unreachable while the fallback tier terminates the chain.
	return Result{Coordinates: DarEsSalaam, Source: SourceFallback, Accuracy: AccuracyApproximate}
}
