package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/geocode"
	"github.com/jonwraymond/rentdata/health"
	"github.com/jonwraymond/rentdata/location"
	"github.com/jonwraymond/rentdata/observe"
	"github.com/jonwraymond/rentdata/property"
	"github.com/jonwraymond/rentdata/query"
)

func newFlags(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type propertyView struct {
	Status     property.Status     `json:"status"`
	Provenance property.Provenance `json:"provenance,omitempty"`
	Reason     property.Reason     `json:"reason,omitempty"`
	Retryable  bool                `json:"retryable"`
	Attempts   int                 `json:"attempts"`
	RetryCount int                 `json:"retryCount"`
	LastError  property.ErrorKind  `json:"lastError,omitempty"`
	Error      string              `json:"error,omitempty"`
	Property   *property.Property  `json:"property,omitempty"`
}

func runProperty(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlags("property", out)
	class := fs.String("class", string(property.ClassBooking), "property class: booking or rental")
	retries := fs.Int("retries", 0, "manual retries to issue after a retryable failure")
	invalidate := fs.Bool("invalidate", false, "drop the local copy before resolving")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: property needs exactly one id", errUsage)
	}
	if err := a.requireAPI(); err != nil {
		return err
	}

	c, id := property.Class(*class), fs.Arg(0)
	if *invalidate {
		if err := a.properties.Invalidate(ctx, c, id); err != nil {
			return err
		}
	}
	load := a.properties.NewLoad(c, id)
	res := load.Load(ctx)
	for i := 0; i < *retries && res.Retryable; i++ {
		res = load.Retry(ctx)
	}

	state := load.State()
	view := propertyView{
		Status:     res.Status,
		Provenance: res.Provenance,
		Reason:     res.Reason,
		Retryable:  res.Retryable,
		Attempts:   res.Attempts,
		RetryCount: state.RetryCount,
		LastError:  state.LastError,
		Property:   res.Property,
	}
	if res.Err != nil {
		view.Error = res.Err.Error()
	}
	if err := printJSON(out, view); err != nil {
		return err
	}
	if res.Terminal() {
		return res.Err
	}
	return nil
}

func runGeocode(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlags("geocode", out)
	var loc geocode.Location
	fs.StringVar(&loc.Region, "region", "", "region name")
	fs.StringVar(&loc.District, "district", "", "district name")
	fs.StringVar(&loc.Ward, "ward", "", "ward name")
	fs.StringVar(&loc.Street, "street", "", "street")
	lat := fs.Float64("lat", 0, "saved latitude")
	lng := fs.Float64("lng", 0, "saved longitude")
	offline := fs.Bool("offline", false, "skip external providers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var saved *geocode.Coordinates
	if *lat != 0 || *lng != 0 {
		saved = &geocode.Coordinates{Lat: *lat, Lng: *lng}
	}
	var res geocode.Result
	if *offline {
		res = a.geocoder.ResolveSync(loc, saved)
	} else {
		res = a.geocoder.Resolve(ctx, loc, saved)
	}
	return printJSON(out, struct {
		geocode.Result
		LowAccuracy bool `json:"lowAccuracy"`
	}{res, res.LowAccuracy()})
}

func runLocations(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlags("locations", out)
	search := fs.String("search", "", "case-insensitive substring filter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir, err := a.locations.Fetch(ctx)
	if err != nil {
		return err
	}
	flat := location.Flatten(dir)
	if *search != "" {
		flat = location.Search(flat, *search)
	}
	return printJSON(out, flat)
}

func runQuery(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlags("query", out)
	op := fs.String("op", "", "operation name")
	doc := fs.String("query", "", "query document")
	vars := fs.String("vars", "", "variables as a JSON object")
	public := fs.Bool("public", false, "force public mode")
	networkOnly := fs.Bool("network-only", false, "skip cache reads")
	ttl := fs.Duration("ttl", 0, "TTL override")
	mutate := fs.Bool("mutate", false, "run as a mutation, bypassing the cache")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *op == "" || *doc == "" {
		return fmt.Errorf("%w: query needs -op and -query", errUsage)
	}
	if err := a.requireAPI(); err != nil {
		return err
	}

	req := api.Request{Operation: *op, Query: *doc}
	if *vars != "" {
		if err := json.Unmarshal([]byte(*vars), &req.Variables); err != nil {
			return fmt.Errorf("%w: -vars: %v", errUsage, err)
		}
	}

	var (
		res query.Result
		err error
	)
	if *mutate {
		res, err = a.queries.Mutate(ctx, req)
	} else {
		res, err = a.queries.Query(ctx, req, query.Options{TTL: *ttl, ForcePublic: *public, NetworkOnly: *networkOnly})
	}
	if err != nil {
		return err
	}
	return printJSON(out, map[string]any{
		"source":   res.Source,
		"key":      res.Key,
		"storedAt": res.StoredAt,
		"data":     res.Data,
		"stats":    a.queries.Stats(),
	})
}

func runCache(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlags("cache", out)
	op := fs.String("op", "", "clear only this operation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || fs.Arg(0) != "clear" {
		return fmt.Errorf("%w: cache supports only \"clear\"", errUsage)
	}

	if *op == "" {
		if err := a.locations.Clear(ctx); err != nil {
			return err
		}
	}
	if a.queries != nil {
		var err error
		if *op != "" {
			err = a.queries.ClearByOperation(ctx, *op)
		} else {
			err = a.queries.ClearAll(ctx)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, "cleared")
	return err
}

func runHealth(ctx context.Context, a *app, args []string, out io.Writer) error {
	fs := newFlags("health", out)
	listen := fs.String("listen", "", "serve /health and /metrics on this address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	agg := a.healthChecks()

	if *listen == "" {
		report := agg.Run(ctx)
		if err := printJSON(out, health.NewReportResponse(report, time.Now())); err != nil {
			return err
		}
		if report.Status == health.StatusUnhealthy {
			return errors.New("rentctl: unhealthy")
		}
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/health", health.Handler(agg))
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	a.inst.Logger().Info(ctx, "serving health", observe.F("addr", *listen))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
