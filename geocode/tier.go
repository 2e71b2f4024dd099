package geocode

import (
	"context"
	"time"

	"github.com/jonwraymond/rentdata/resilience"
)

// Input is what every tier receives.
type Input struct {
	Location Location
	Saved    *Coordinates
}

// Tier is one strategy of the resolution chain.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: ok=false with a nil error is a miss; an error is a transient
//     failure. Both fall through to the next tier.
type Tier interface {
	Name() Source
	Attempt(ctx context.Context, in Input) (res Result, ok bool, err error)
}

type savedTier struct{}

func (savedTier) Name() Source { return SourceSaved }

func (savedTier) Attempt(_ context.Context, in Input) (Result, bool, error) {
	if in.Saved == nil || in.Saved.IsZero() {
		return Result{}, false, nil
	}
	return Result{Coordinates: *in.Saved, Source: SourceSaved, Accuracy: AccuracyExact}, true, nil
}

type gazetteerTier struct {
	g *Gazetteer
}

func (gazetteerTier) Name() Source { return SourceLocalDatabase }

func (t gazetteerTier) Attempt(_ context.Context, in Input) (Result, bool, error) {
	res, ok := t.g.Lookup(in.Location)
	return res, ok, nil
}

type fallbackTier struct {
	at Coordinates
}

func (fallbackTier) Name() Source { return SourceFallback }

func (t fallbackTier) Attempt(context.Context, Input) (Result, bool, error) {
	return Result{Coordinates: t.at, Source: SourceFallback, Accuracy: AccuracyApproximate}, true, nil
}

// providerTier issues query variants to an external provider in order and
// takes the first acceptable candidate. Any error ends the tier.
type providerTier struct {
	source   Source
	provider Provider
	guard    *resilience.Guard
	variants func(Location) []string
	delay    time.Duration
	sleep    resilience.SleepFunc
	bounds   *BoundingBox
}

func (t *providerTier) Name() Source { return t.source }

func (t *providerTier) Attempt(ctx context.Context, in Input) (Result, bool, error) {
	var pacer *resilience.Pacer
	if t.delay > 0 {
		pacer = resilience.NewPacer(t.delay, t.sleep)
	}

	for _, q := range t.variants(in.Location) {
		if pacer != nil {
			if err := pacer.Next(ctx); err != nil {
				return Result{}, false, err
			}
		}

		var candidates []Coordinates
		err := t.guard.Do(ctx, func(ctx context.Context) error {
			var err error
			candidates, err = t.provider.Lookup(ctx, q)
			return err
		})
		if err != nil {
			return Result{}, false, err
		}

		for _, c := range candidates {
			if t.bounds != nil && !t.bounds.Contains(c) {
				continue
			}
			return Result{Coordinates: c, Source: t.source, Accuracy: AccuracyExact}, true, nil
		}
	}
	return Result{}, false, nil
}
