package property

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/auth"
	"github.com/jonwraymond/rentdata/kv"
	"github.com/jonwraymond/rentdata/query"
)

// edgeServer serves <class>/<id>.json from a mutable table.
type edgeServer struct {
	mu     sync.Mutex
	status map[string]int
	bodies map[string]string
	hits   atomic.Int64
	srv    *httptest.Server
}

func newEdgeServer(t *testing.T) *edgeServer {
	t.Helper()
	e := &edgeServer{status: map[string]int{}, bodies: map[string]string{}}
	e.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.hits.Add(1)
		path := strings.TrimPrefix(r.URL.Path, "/")
		e.mu.Lock()
		code, ok := e.status[path]
		body := e.bodies[path]
		e.mu.Unlock()
		if !ok {
			code = http.StatusNotFound
		}
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(e.srv.Close)
	return e
}

func (e *edgeServer) set(path string, code int, body string) {
	e.mu.Lock()
	e.status[path] = code
	e.bodies[path] = body
	e.mu.Unlock()
}

// scriptedAPI returns reply, or err when set, and records modes.
type scriptedAPI struct {
	mu    sync.Mutex
	calls int
	modes []auth.Mode
	reply string
	err   error
}

func (s *scriptedAPI) Execute(_ context.Context, _ api.Request, mode auth.Mode) (*api.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.modes = append(s.modes, mode)
	if s.err != nil {
		return nil, s.err
	}
	return &api.Response{Data: json.RawMessage(s.reply)}, nil
}

func (s *scriptedAPI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *scriptedAPI) setReply(reply string, err error) {
	s.mu.Lock()
	s.reply, s.err = reply, err
	s.mu.Unlock()
}

type fixture struct {
	resolver *Resolver
	edge     *edgeServer
	api      *scriptedAPI
	store    *kv.MemoryStore
}

func newFixture(t *testing.T, withEdge bool) *fixture {
	t.Helper()
	f := &fixture{api: &scriptedAPI{}, store: kv.NewMemoryStore()}
	authed := auth.ProberFunc(func(context.Context) bool { return true })
	qc, err := query.New(query.Config{Executor: f.api, Prober: authed})
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{Queries: qc, Store: f.store}
	if withEdge {
		f.edge = newEdgeServer(t)
		cfg.EdgeBaseURL = f.edge.srv.URL
	}
	f.resolver, err = NewResolver(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(f.resolver.Wait)
	return f
}

func TestNewResolver_RequiresQueries(t *testing.T) {
	if _, err := NewResolver(Config{}); !errors.Is(err, ErrNilQueryCache) {
		t.Fatalf("NewResolver() error = %v", err)
	}
}

func TestResolver_TierOrder(t *testing.T) {
	f := newFixture(t, true)
	tests := []struct {
		class Class
		want  []Provenance
	}{
		{ClassBooking, []Provenance{ProvenanceLocal, ProvenanceEdge, ProvenanceAPI}},
		{ClassRental, []Provenance{ProvenanceLocal, ProvenanceEdge, ProvenanceOrigin, ProvenanceAPI}},
	}
	for _, tt := range tests {
		got := f.resolver.Tiers(tt.class)
		if len(got) != len(tt.want) {
			t.Fatalf("%s tiers = %v, want %v", tt.class, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s tier[%d] = %s, want %s", tt.class, i, got[i], tt.want[i])
			}
		}
	}

	noEdge := newFixture(t, false)
	if got := noEdge.resolver.Tiers(ClassRental); len(got) != 2 {
		t.Errorf("rental without edge = %v, want local and api", got)
	}
}

func TestResolver_EdgeHitThenLocal(t *testing.T) {
	f := newFixture(t, true)
	f.edge.set("booking/b1.json", 200, `{"id":"b1","title":"Beach house"}`)

	res := f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)
	if !res.Resolved() || res.Provenance != ProvenanceEdge {
		t.Fatalf("first resolve = %+v", res)
	}
	if res.Property.Title != "Beach house" {
		t.Errorf("title = %q", res.Property.Title)
	}

	res = f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)
	if res.Provenance != ProvenanceLocal {
		t.Fatalf("second resolve provenance = %s, want local", res.Provenance)
	}
	if f.api.callCount() != 0 {
		t.Errorf("api calls = %d, want 0", f.api.callCount())
	}
}

func TestResolver_BackgroundRefresh(t *testing.T) {
	f := newFixture(t, true)
	f.edge.set("booking/b1.json", 200, `{"id":"b1","title":"Old"}`)
	_ = f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)

	f.edge.set("booking/b1.json", 200, `{"id":"b1","title":"New"}`)
	res := f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)
	if res.Provenance != ProvenanceLocal || res.Property.Title != "Old" {
		t.Fatalf("cached result altered: %s %q", res.Provenance, res.Property.Title)
	}
	f.resolver.Wait()

	res = f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)
	if res.Property.Title != "New" {
		t.Errorf("after refresh title = %q, want New", res.Property.Title)
	}
}

func TestResolver_RentalOriginAfterEdge404(t *testing.T) {
	f := newFixture(t, true)
	f.api.setReply(`{"property":{"id":"r1","title":"Flat"}}`, nil)

	res := f.resolver.Resolve(context.Background(), ClassRental, "r1", nil)
	if !res.Resolved() || res.Provenance != ProvenanceOrigin {
		t.Fatalf("resolve = %+v, want origin", res)
	}
	if f.api.modes[0] != auth.ModePublic {
		t.Errorf("origin mode = %s, want public", f.api.modes[0])
	}

	res = f.resolver.Resolve(context.Background(), ClassRental, "r1", nil)
	if res.Provenance != ProvenanceLocal {
		t.Errorf("write-back missing: provenance = %s", res.Provenance)
	}
}

func TestResolver_RentalEdgeErrorSkipsOrigin(t *testing.T) {
	f := newFixture(t, true)
	f.edge.set("rental/r1.json", 500, "boom")
	f.api.setReply(`{"property":{"id":"r1","title":"Flat"}}`, nil)

	res := f.resolver.Resolve(context.Background(), ClassRental, "r1", nil)
	if res.Provenance != ProvenanceAPI {
		t.Fatalf("provenance = %s, want api", res.Provenance)
	}
	if len(f.api.modes) != 1 || f.api.modes[0] != auth.ModeAuthenticated {
		t.Errorf("modes = %v, want one authenticated call", f.api.modes)
	}
}

func TestResolver_DeletedMarkerShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"flag", `{"id":"b1","deleted":true}`},
		{"status", `{"id":"b1","status":"DELETED"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			f.edge.set("booking/b1.json", 200, tt.body)

			res := f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)
			if !res.Terminal() || res.Reason != ReasonGone {
				t.Fatalf("result = %+v, want terminal gone", res)
			}
			if !errors.Is(res.Err, ErrGone) {
				t.Errorf("err = %v, want ErrGone", res.Err)
			}
			if res.Attempts != 2 {
				t.Errorf("attempts = %d, want 2", res.Attempts)
			}
			if f.api.callCount() != 0 {
				t.Errorf("api called %d times after deleted marker", f.api.callCount())
			}
		})
	}
}

func TestResolver_APINotFoundIsGone(t *testing.T) {
	f := newFixture(t, false)
	f.api.setReply("", &api.ResponseError{Errors: []api.Error{{Message: "x", Extensions: map[string]any{"code": "NOT_FOUND"}}}})

	state := &FetchState{}
	res := f.resolver.Resolve(context.Background(), ClassBooking, "b1", state)
	if res.Reason != ReasonGone || !res.Terminal() {
		t.Fatalf("result = %+v, want gone", res)
	}
	if state.RetryCount != 0 {
		t.Errorf("retry count = %d, want 0", state.RetryCount)
	}
}

func TestResolver_APINullIsGone(t *testing.T) {
	f := newFixture(t, false)
	f.api.setReply(`{"property":null}`, nil)

	res := f.resolver.Resolve(context.Background(), ClassRental, "r1", nil)
	if res.Reason != ReasonGone {
		t.Fatalf("result = %+v, want gone", res)
	}
}

func TestLoad_RetryCeiling(t *testing.T) {
	f := newFixture(t, false)
	f.api.setReply("", api.ErrTransport)

	load := f.resolver.NewLoad(ClassBooking, "b1")
	var terminal int
	res := load.Load(context.Background())
	for i := 0; i < 10; i++ {
		if res.Terminal() {
			terminal++
			break
		}
		if !res.Retryable || !errors.Is(res.Err, ErrRetryable) {
			t.Fatalf("attempt %d = %+v, want retryable", i+1, res)
		}
		res = load.Retry(context.Background())
	}

	if terminal != 1 || res.Reason != ReasonExhausted {
		t.Fatalf("final = %+v, want one exhausted signal", res)
	}
	if !errors.Is(res.Err, ErrExhausted) {
		t.Errorf("err = %v, want ErrExhausted", res.Err)
	}
	if f.api.callCount() != DefaultMaxRetries {
		t.Errorf("api calls = %d, want %d", f.api.callCount(), DefaultMaxRetries)
	}
	if st := load.State(); st.RetryCount != DefaultMaxRetries || st.LastError != ErrorKindNetwork {
		t.Errorf("state = %+v", st)
	}

	again := load.Retry(context.Background())
	if again.Reason != ReasonExhausted || f.api.callCount() != DefaultMaxRetries {
		t.Errorf("terminal load attempted tiers again: calls = %d", f.api.callCount())
	}
	if load.Status() != StatusFailed {
		t.Errorf("status = %s, want failed", load.Status())
	}
}

func TestLoad_SuccessResetsState(t *testing.T) {
	f := newFixture(t, false)
	f.api.setReply("", api.ErrTransport)

	load := f.resolver.NewLoad(ClassBooking, "b1")
	load.Load(context.Background())
	load.Retry(context.Background())
	if load.State().RetryCount != 2 {
		t.Fatalf("retry count = %d, want 2", load.State().RetryCount)
	}

	f.api.setReply(`{"property":{"id":"b1","title":"Villa"}}`, nil)
	res := load.Retry(context.Background())
	if !res.Resolved() || res.Provenance != ProvenanceAPI {
		t.Fatalf("result = %+v", res)
	}
	if st := load.State(); st != (FetchState{}) {
		t.Errorf("state = %+v, want reset", st)
	}
	if again := load.Load(context.Background()); again.Property != res.Property {
		t.Error("Load after resolve should return the resolved result")
	}
}

func TestResolver_Invalidate(t *testing.T) {
	f := newFixture(t, true)
	f.edge.set("booking/b1.json", 200, `{"id":"b1"}`)
	_ = f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)

	if err := f.resolver.Invalidate(context.Background(), ClassBooking, "b1"); err != nil {
		t.Fatal(err)
	}
	res := f.resolver.Resolve(context.Background(), ClassBooking, "b1", nil)
	if res.Provenance != ProvenanceEdge {
		t.Errorf("provenance after invalidate = %s, want edge", res.Provenance)
	}
	if err := f.resolver.Invalidate(context.Background(), Class("hotel"), "x"); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("unknown class error = %v", err)
	}
}

func TestResolver_InvalidInput(t *testing.T) {
	f := newFixture(t, false)
	if res := f.resolver.Resolve(context.Background(), ClassBooking, " ", nil); !errors.Is(res.Err, ErrInvalidID) {
		t.Errorf("empty id err = %v", res.Err)
	}
	if res := f.resolver.Resolve(context.Background(), Class("hotel"), "x", nil); !errors.Is(res.Err, ErrUnknownClass) {
		t.Errorf("unknown class err = %v", res.Err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, ErrorKindNone},
		{api.ErrTransport, ErrorKindNetwork},
		{&api.StatusError{StatusCode: 502}, ErrorKindHTTP},
		{api.ErrDecode, ErrorKindDecode},
		{decodeError(errors.New("bad")), ErrorKindDecode},
		{errors.New("other"), ErrorKindAPI},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
