package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonwraymond/rentdata/resilience"
)

// scripted answers lookups from a table and records the queries it saw.
type scripted struct {
	mu      sync.Mutex
	answers map[string][]Coordinates
	err     error
	queries []string
}

func (s *scripted) Lookup(_ context.Context, address string) ([]Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, address)
	if s.err != nil {
		return nil, s.err
	}
	return s.answers[address], nil
}

func (s *scripted) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func noSleep(context.Context, time.Duration) error { return nil }

func unreachable(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}

// unreachableResolver wires real clients at a closed port.
func unreachableResolver(t *testing.T) *Resolver {
	t.Helper()
	base := unreachable(t)
	a, err := NewGoogleClient(GoogleConfig{APIKey: "k", BaseURL: base})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewNominatimClient(NominatimConfig{UserAgent: "rentdata-test", BaseURL: base})
	if err != nil {
		t.Fatal(err)
	}
	return NewResolver(Config{
		ProviderA: a,
		ProviderB: b,
		GuardB:    resilience.NewGuard(resilience.GuardConfig{}),
		Sleep:     noSleep,
	})
}

func TestResolve_SavedTakesPrecedence(t *testing.T) {
	a := &scripted{answers: map[string][]Coordinates{"Ilala, Dar es Salaam, Tanzania": {{Lat: -1, Lng: 1}}}}
	b := &scripted{}
	r := NewResolver(Config{ProviderA: a, ProviderB: b, Sleep: noSleep})

	saved := &Coordinates{Lat: -6.7924, Lng: 39.2083}
	res := r.Resolve(context.Background(), Location{Region: "Dar es Salaam", District: "Ilala"}, saved)

	if res.Coordinates != *saved || res.Source != SourceSaved || res.Accuracy != AccuracyExact {
		t.Fatalf("Resolve() = %+v, want saved coordinates", res)
	}
	if len(a.seen()) != 0 || len(b.seen()) != 0 {
		t.Errorf("providers invoked: A=%v B=%v", a.seen(), b.seen())
	}
}

func TestResolve_ZeroSavedIgnored(t *testing.T) {
	r := NewResolver(Config{})
	res := r.Resolve(context.Background(), Location{Region: "Arusha"}, &Coordinates{})
	if res.Source != SourceLocalDatabase {
		t.Errorf("source = %s, want localDatabase", res.Source)
	}
}

func TestResolve_ProviderAFirstMatchingVariant(t *testing.T) {
	a := &scripted{answers: map[string][]Coordinates{
		"Kinondoni, Dar es Salaam, Tanzania": {{Lat: -6.77, Lng: 39.24}},
	}}
	r := NewResolver(Config{ProviderA: a})

	res := r.Resolve(context.Background(), Location{Region: "Dar es Salaam", District: "Kinondoni", Ward: "Msasani"}, nil)
	if res.Source != SourceProviderA || res.Accuracy != AccuracyExact {
		t.Fatalf("Resolve() = %+v, want provider A exact", res)
	}
	want := []string{"Msasani, Kinondoni, Dar es Salaam, Tanzania", "Kinondoni, Dar es Salaam, Tanzania"}
	if got := a.seen(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("queries = %q, want %q", got, want)
	}
}

func TestResolve_ProviderBBoundsAndPacing(t *testing.T) {
	b := &scripted{answers: map[string][]Coordinates{
		"Msasani, Kinondoni, Dar es Salaam, Tanzania": {{Lat: 51.5, Lng: -0.12}},
		"Kinondoni, Dar es Salaam, Tanzania":          {{Lat: 40.0, Lng: 0}, {Lat: -6.77, Lng: 39.25}},
	}}
	var sleeps []time.Duration
	r := NewResolver(Config{
		ProviderB: b,
		GuardB:    resilience.NewGuard(resilience.GuardConfig{}),
		Sleep: func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		},
	})

	res := r.Resolve(context.Background(), Location{Region: "Dar es Salaam", District: "Kinondoni", Ward: "Msasani"}, nil)
	if res.Source != SourceProviderB || res.Coordinates != (Coordinates{Lat: -6.77, Lng: 39.25}) {
		t.Fatalf("Resolve() = %+v, want in-bounds provider B candidate", res)
	}
	if len(sleeps) != 1 || sleeps[0] != DefaultProviderBDelay {
		t.Errorf("sleeps = %v, want one %v delay", sleeps, DefaultProviderBDelay)
	}
}

func TestResolve_ProviderBSkipsRegionOnly(t *testing.T) {
	b := &scripted{answers: map[string][]Coordinates{"Arusha, Tanzania": {{Lat: -3.38, Lng: 36.68}}}}
	r := NewResolver(Config{ProviderB: b, GuardB: resilience.NewGuard(resilience.GuardConfig{}), Sleep: noSleep})

	res := r.Resolve(context.Background(), Location{Region: "Arusha"}, nil)
	if res.Source != SourceLocalDatabase {
		t.Errorf("source = %s, want localDatabase", res.Source)
	}
	if len(b.seen()) != 0 {
		t.Errorf("provider B queried %q", b.seen())
	}
}

func TestResolve_GazetteerWhenProvidersUnreachable(t *testing.T) {
	r := unreachableResolver(t)

	res := r.Resolve(context.Background(), Location{Region: "Dodoma", District: "Kondoa"}, nil)
	if res.Source != SourceLocalDatabase || res.Accuracy != AccuracyDistrict {
		t.Fatalf("Resolve() = %+v, want localDatabase/district", res)
	}
	if res.Coordinates != (Coordinates{Lat: -4.9000, Lng: 35.7833}) {
		t.Errorf("coordinates = %v", res.Coordinates)
	}
}

func TestResolve_FallbackWhenNothingKnown(t *testing.T) {
	r := unreachableResolver(t)

	res := r.Resolve(context.Background(), Location{}, nil)
	if res.Source != SourceFallback || res.Accuracy != AccuracyApproximate || res.Coordinates != DarEsSalaam {
		t.Fatalf("Resolve() = %+v, want fallback", res)
	}
	if !res.LowAccuracy() {
		t.Error("fallback should be low accuracy")
	}
}

func TestResolve_ProviderErrorFallsThrough(t *testing.T) {
	a := &scripted{err: errors.New("quota")}
	b := &scripted{answers: map[string][]Coordinates{"Ilala, Dar es Salaam, Tanzania": {{Lat: -6.83, Lng: 39.23}}}}
	r := NewResolver(Config{ProviderA: a, ProviderB: b, GuardB: resilience.NewGuard(resilience.GuardConfig{}), Sleep: noSleep})

	res := r.Resolve(context.Background(), Location{Region: "Dar es Salaam", District: "Ilala"}, nil)
	if res.Source != SourceProviderB {
		t.Fatalf("source = %s, want provider B", res.Source)
	}
	if len(a.seen()) != 1 {
		t.Errorf("provider A queries = %d, want 1 before falling through", len(a.seen()))
	}
}

func TestResolve_OpenBreakerSkipsProvider(t *testing.T) {
	a := &scripted{err: errors.New("down")}
	guard := resilience.NewGuard(resilience.GuardConfig{
		Breaker: resilience.NewBreaker(resilience.BreakerConfig{MaxFailures: 2, ResetTimeout: time.Hour}),
	})
	r := NewResolver(Config{ProviderA: a, GuardA: guard})
	loc := Location{Region: "Mwanza", District: "Ilemela"}

	for i := 0; i < 4; i++ {
		if res := r.Resolve(context.Background(), loc, nil); res.Source != SourceLocalDatabase {
			t.Fatalf("call %d source = %s", i, res.Source)
		}
	}
	if got := len(a.seen()); got != 2 {
		t.Errorf("provider A calls = %d, want 2 before breaker opened", got)
	}
}

func TestResolveSync_MatchesAsyncLocalPath(t *testing.T) {
	a := &scripted{}
	r := NewResolver(Config{ProviderA: a})
	loc := Location{Region: "Kilimanjaro", District: "Moshi"}

	syncRes := r.ResolveSync(loc, nil)
	local, _ := DefaultGazetteer().Lookup(loc)
	if syncRes != local {
		t.Errorf("ResolveSync() = %+v, want %+v", syncRes, local)
	}
	if len(a.seen()) != 0 {
		t.Error("ResolveSync must not call providers")
	}
	if got := r.ResolveSync(Location{}, nil); got.Source != SourceFallback {
		t.Errorf("empty ResolveSync source = %s", got.Source)
	}
	saved := Coordinates{Lat: -3.0, Lng: 36.0}
	if got := r.ResolveSync(loc, &saved); got.Source != SourceSaved {
		t.Errorf("saved ResolveSync source = %s", got.Source)
	}
}

func TestNewResolver_TierOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []Source
	}{
		{"offline", Config{}, []Source{SourceSaved, SourceLocalDatabase, SourceFallback}},
		{"both", Config{ProviderA: &scripted{}, ProviderB: &scripted{}},
			[]Source{SourceSaved, SourceProviderA, SourceProviderB, SourceLocalDatabase, SourceFallback}},
		{"only B", Config{ProviderB: &scripted{}},
			[]Source{SourceSaved, SourceProviderB, SourceLocalDatabase, SourceFallback}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewResolver(tt.cfg).Tiers()
			if len(got) != len(tt.want) {
				t.Fatalf("Tiers() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tiers()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolver_Breakers(t *testing.T) {
	r := NewResolver(Config{
		ProviderA: &scripted{},
		ProviderB: &scripted{},
		GuardB:    resilience.NewGuard(resilience.GuardConfig{}),
	})
	got := r.Breakers()
	if len(got) != 1 || got[0].Name() != "providerA" {
		t.Errorf("Breakers() = %v, want only the default provider A breaker", got)
	}
}
