package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonwraymond/rentdata/auth"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type recorded struct {
	auth      string
	requestID string
	body      map[string]any
}

func newAPIServer(t *testing.T, status int, reply string, rec *recorded) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if rec != nil {
			rec.auth = r.Header.Get("Authorization")
			rec.requestID = r.Header.Get(RequestIDHeader)
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); !errors.Is(err, ErrMissingEndpoint) {
		t.Fatalf("NewClient() error = %v, want ErrMissingEndpoint", err)
	}
}

func TestClient_PublicModeSendsNoToken(t *testing.T) {
	var rec recorded
	srv := newAPIServer(t, http.StatusOK, `{"data":{"property":{"id":"p1"}}}`, &rec)
	c, err := NewClient(ClientConfig{Endpoint: srv.URL, Tokens: staticToken("tok"), NewRequestID: func() string { return "req-1" }})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := c.Execute(context.Background(), Request{
		Operation: "getProperty",
		Query:     "query getProperty($id: ID!) { property(id: $id) { id } }",
		Variables: map[string]any{"id": "p1"},
	}, auth.ModePublic)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !resp.HasData() {
		t.Fatal("expected data")
	}
	if rec.auth != "" {
		t.Errorf("Authorization = %q, want empty in public mode", rec.auth)
	}
	if rec.requestID != "req-1" {
		t.Errorf("request id = %q", rec.requestID)
	}
	if rec.body["operationName"] != "getProperty" {
		t.Errorf("operationName = %v", rec.body["operationName"])
	}
	vars, _ := rec.body["variables"].(map[string]any)
	if vars["id"] != "p1" {
		t.Errorf("variables = %v", rec.body["variables"])
	}
}

func TestClient_AuthenticatedModeAttachesBearer(t *testing.T) {
	var rec recorded
	srv := newAPIServer(t, http.StatusOK, `{"data":{}}`, &rec)
	c, _ := NewClient(ClientConfig{Endpoint: srv.URL, Tokens: staticToken("tok-123")})

	if _, err := c.Execute(context.Background(), Request{Operation: "me"}, auth.ModeAuthenticated); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if rec.auth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", rec.auth)
	}
	if rec.requestID == "" {
		t.Error("expected generated request id")
	}
}

func TestClient_AuthenticatedWithoutTokens(t *testing.T) {
	c, _ := NewClient(ClientConfig{Endpoint: "http://127.0.0.1:1"})
	_, err := c.Execute(context.Background(), Request{Operation: "me"}, auth.ModeAuthenticated)
	if !errors.Is(err, auth.ErrMissingCredentials) {
		t.Fatalf("error = %v, want ErrMissingCredentials", err)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		reply    string
		want     error
		notFound bool
	}{
		{name: "not found code", status: 200, reply: `{"errors":[{"message":"gone","extensions":{"code":"NOT_FOUND"}}]}`, want: ErrResponse, notFound: true},
		{name: "not found message", status: 200, reply: `{"errors":[{"message":"Property not found"}]}`, want: ErrResponse, notFound: true},
		{name: "other api error", status: 200, reply: `{"errors":[{"message":"internal"}]}`, want: ErrResponse},
		{name: "http status", status: 502, reply: `bad gateway`, want: ErrHTTPStatus},
		{name: "decode", status: 200, reply: `{not json`, want: ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newAPIServer(t, tt.status, tt.reply, nil)
			c, _ := NewClient(ClientConfig{Endpoint: srv.URL})
			_, err := c.Execute(context.Background(), Request{Operation: "getProperty"}, auth.ModePublic)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if IsNotFound(err) != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", IsNotFound(err), tt.notFound)
			}
		})
	}
}

func TestClient_StatusErrorCode(t *testing.T) {
	srv := newAPIServer(t, http.StatusServiceUnavailable, `down`, nil)
	c, _ := NewClient(ClientConfig{Endpoint: srv.URL})
	_, err := c.Execute(context.Background(), Request{Operation: "x"}, auth.ModePublic)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusServiceUnavailable || se.Body != "down" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestClient_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := NewClient(ClientConfig{Endpoint: url})
	_, err := c.Execute(context.Background(), Request{Operation: "x"}, auth.ModePublic)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("error = %v, want ErrTransport", err)
	}
}

func TestClient_InvalidInput(t *testing.T) {
	c, _ := NewClient(ClientConfig{Endpoint: "http://127.0.0.1:1"})
	if _, err := c.Execute(context.Background(), Request{}, auth.ModePublic); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("empty operation error = %v", err)
	}
	if _, err := c.Execute(context.Background(), Request{Operation: "x"}, auth.Mode("root")); !errors.Is(err, auth.ErrInvalidMode) {
		t.Errorf("bad mode error = %v", err)
	}
}
