package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/auth"
	"github.com/jonwraymond/rentdata/config"
	"github.com/jonwraymond/rentdata/geocode"
	"github.com/jonwraymond/rentdata/health"
	"github.com/jonwraymond/rentdata/kv"
	"github.com/jonwraymond/rentdata/location"
	"github.com/jonwraymond/rentdata/observe"
	"github.com/jonwraymond/rentdata/property"
	"github.com/jonwraymond/rentdata/query"
)

// errNoEndpoint is returned by commands that need the API when none is set.
var errNoEndpoint = errors.New("rentctl: RENTDATA_API_ENDPOINT is not set")

// app owns every service instance for one invocation.
type app struct {
	cfg  *config.Config
	obs  observe.Observer
	inst *observe.Instrumentation

	store   kv.Store
	session *auth.TokenSession

	queries    *query.Cache
	properties *property.Resolver
	geocoder   *geocode.Resolver
	locations  *location.Cache
}

func newApp(ctx context.Context, cfg *config.Config, logs io.Writer) (*app, error) {
	oc := cfg.Observe(version)
	oc.Logging.Writer = logs
	obs, err := observe.NewObserver(ctx, oc)
	if err != nil {
		return nil, err
	}
	inst, err := observe.FromObserver(obs)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, obs: obs, inst: inst}

	if a.store, err = openStore(cfg.Store); err != nil {
		return nil, err
	}

	a.session = auth.NewTokenSession(auth.SessionConfig{Leeway: 30 * time.Second})
	if cfg.API.Token != "" {
		if err := a.session.Set(cfg.API.Token); err != nil {
			return nil, fmt.Errorf("rentctl: API token: %w", err)
		}
	}

	if cfg.API.Endpoint != "" {
		client, err := api.NewClient(api.ClientConfig{
			Endpoint:  cfg.API.Endpoint,
			Timeout:   cfg.API.Timeout,
			Tokens:    a.session,
			UserAgent: cfg.API.UserAgent,
			Logger:    inst.Logger(),
		})
		if err != nil {
			return nil, err
		}
		policy := cfg.Policy()
		a.queries, err = query.New(query.Config{
			Executor:        client,
			Store:           a.store,
			Prober:          a.session,
			Policy:          &policy,
			MemorySize:      cfg.Query.MemorySize,
			Instrumentation: inst,
		})
		if err != nil {
			return nil, err
		}
		a.properties, err = property.NewResolver(property.Config{
			Queries:         a.queries,
			Store:           a.store,
			LocalTTL:        cfg.Property.LocalTTL,
			EdgeBaseURL:     cfg.Property.EdgeBaseURL,
			MaxRetries:      cfg.Property.MaxRetries,
			RefreshTimeout:  cfg.Property.RefreshTimeout,
			Instrumentation: inst,
		})
		if err != nil {
			return nil, err
		}
	}

	if a.geocoder, err = newGeocoder(cfg, inst); err != nil {
		return nil, err
	}

	var src location.Source = location.NewStaticSource(nil)
	if a.queries != nil && !cfg.Location.Static {
		if src, err = location.NewAPISource(a.queries); err != nil {
			return nil, err
		}
	}
	a.locations, err = location.New(location.Config{
		Source:          src,
		Store:           a.store,
		TTL:             cfg.Location.TTL,
		Instrumentation: inst,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func openStore(cfg config.StoreConfig) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kv.NewMemoryStore(), nil
	case config.BackendRedis:
		return kv.NewRedisStore(kv.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Namespace: cfg.RedisPrefix,
		}), nil
	default:
		return kv.NewFileStore(cfg.Dir)
	}
}

func newGeocoder(cfg *config.Config, inst *observe.Instrumentation) (*geocode.Resolver, error) {
	gc := geocode.Config{
		ProviderBDelay:  cfg.Geocode.ProviderBDelay,
		AttemptTimeout:  cfg.Geocode.AttemptTimeout,
		Country:         cfg.Geocode.Country,
		Instrumentation: inst,
	}
	bounds := cfg.BoundingBox()
	gc.Bounds = &bounds

	if cfg.Geocode.ProviderAKey != "" {
		a, err := geocode.NewGoogleClient(geocode.GoogleConfig{
			APIKey:  cfg.Geocode.ProviderAKey,
			BaseURL: cfg.Geocode.ProviderAURL,
			Region:  cfg.Geocode.CountryCode,
		})
		if err != nil {
			return nil, err
		}
		gc.ProviderA = a
	}
	if cfg.Geocode.ProviderBUserAgent != "" {
		b, err := geocode.NewNominatimClient(geocode.NominatimConfig{
			UserAgent:    cfg.Geocode.ProviderBUserAgent,
			BaseURL:      cfg.Geocode.ProviderBURL,
			CountryCodes: cfg.Geocode.CountryCode,
		})
		if err != nil {
			return nil, err
		}
		gc.ProviderB = b
	}
	return geocode.NewResolver(gc), nil
}

// healthChecks registers a checker for every configured dependency.
func (a *app) healthChecks() *health.Aggregator {
	agg := health.NewAggregator(health.AggregatorConfig{})
	agg.Register(health.NewStoreChecker("store", a.store))
	client := &http.Client{Timeout: 5 * time.Second}
	if a.cfg.API.Endpoint != "" {
		agg.Register(health.NewEndpointChecker("api", a.cfg.API.Endpoint, client))
	}
	if a.cfg.Property.EdgeBaseURL != "" {
		agg.Register(health.NewEndpointChecker("edge", a.cfg.Property.EdgeBaseURL, client))
	}
	for _, b := range a.geocoder.Breakers() {
		agg.Register(health.NewBreakerChecker(b))
	}
	return agg
}

// requireAPI fails commands that cannot run offline.
func (a *app) requireAPI() error {
	if a.queries == nil {
		return errNoEndpoint
	}
	return nil
}

// close waits for background writes and flushes telemetry.
func (a *app) close(ctx context.Context) error {
	if a.properties != nil {
		a.properties.Wait()
	}
	if a.queries != nil {
		a.queries.Wait()
	}
	var errs []error
	if c, ok := a.store.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	errs = append(errs, a.obs.Shutdown(ctx))
	return errors.Join(errs...)
}
