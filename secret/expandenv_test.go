package secret

import (
	"errors"
	"strings"
	"testing"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestExpand(t *testing.T) {
	env := mapLookup(map[string]string{"HOST": "api.example.co.tz", "PORT": "443"})

	tests := []struct {
		name    string
		in      string
		want    string
		missing string
	}{
		{"braced", "https://${HOST}:${PORT}/graphql", "https://api.example.co.tz:443/graphql", ""},
		{"bare", "$HOST", "api.example.co.tz", ""},
		{"bare missing is empty", "x$NOPE", "x", ""},
		{"escape", "cost $$5", "cost $5", ""},
		{"braced missing", "${A}-${B}-${A}", "", "A, B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.in, env)
			if tt.missing != "" {
				if !errors.Is(err, ErrMissingEnv) || !strings.HasSuffix(err.Error(), tt.missing) {
					t.Fatalf("Expand() error = %v, want missing %s", err, tt.missing)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Expand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("RENTDATA_TEST_REGION", "tz")
	got, err := ExpandEnvStrict("${RENTDATA_TEST_REGION}")
	if err != nil || got != "tz" {
		t.Errorf("ExpandEnvStrict() = %q, %v", got, err)
	}
}
