package cache

import (
	"errors"
	"strings"
	"testing"
)

func TestKeyer_StableUnderKeyPermutation(t *testing.T) {
	keyer := NewDefaultKeyer()

	key1, err := keyer.Key("getProperty", "public", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	key2, err := keyer.Key("getProperty", "public", map[string]any{"b": 2, "a": 1})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}

	if key1 != key2 {
		t.Errorf("keys differ for permuted variables:\n  key1=%s\n  key2=%s", key1, key2)
	}
}

func TestKeyer_Format(t *testing.T) {
	keyer := NewDefaultKeyer()

	key, err := keyer.Key("listProperties", "authenticated", map[string]any{"region": "Arusha", "limit": 20})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	want := `listProperties:authenticated:{"limit":20,"region":"Arusha"}`
	if key != want {
		t.Errorf("Key() = %s, want %s", key, want)
	}
}

func TestKeyer_NestedMaps(t *testing.T) {
	keyer := NewDefaultKeyer()

	nested1 := map[string]any{
		"filter": map[string]any{"z": 26, "a": 1, "m": []any{map[string]any{"y": 1, "x": 2}}},
		"other":  "value",
	}
	nested2 := map[string]any{
		"other":  "value",
		"filter": map[string]any{"m": []any{map[string]any{"x": 2, "y": 1}}, "a": 1, "z": 26},
	}

	key1, _ := keyer.Key("search", "public", nested1)
	key2, _ := keyer.Key("search", "public", nested2)
	if key1 != key2 {
		t.Errorf("nested keys differ:\n  key1=%s\n  key2=%s", key1, key2)
	}
}

func TestKeyer_StructsAndMapsAgree(t *testing.T) {
	keyer := NewDefaultKeyer()

	type vars struct {
		ID     string `json:"id"`
		Locale string `json:"locale"`
	}

	key1, _ := keyer.Key("getProperty", "public", vars{ID: "p-1", Locale: "sw"})
	key2, _ := keyer.Key("getProperty", "public", map[string]string{"locale": "sw", "id": "p-1"})
	if key1 != key2 {
		t.Errorf("struct and map keys differ:\n  key1=%s\n  key2=%s", key1, key2)
	}
}

func TestKeyer_AuthModeSeparatesKeys(t *testing.T) {
	keyer := NewDefaultKeyer()
	vars := map[string]any{"id": "p-1"}

	pub, _ := keyer.Key("getProperty", "public", vars)
	authd, _ := keyer.Key("getProperty", "authenticated", vars)
	if pub == authd {
		t.Errorf("auth mode should change key, both = %s", pub)
	}
}

func TestKeyer_ArrayOrderPreserved(t *testing.T) {
	keyer := NewDefaultKeyer()

	key1, _ := keyer.Key("search", "public", map[string]any{"ids": []any{1, 2, 3}})
	key2, _ := keyer.Key("search", "public", map[string]any{"ids": []any{3, 2, 1}})
	if key1 == key2 {
		t.Errorf("keys should differ for different array order: %s", key1)
	}
}

func TestKeyer_NilAndEmptyVariables(t *testing.T) {
	keyer := NewDefaultKeyer()

	k1, _ := keyer.Key("listRegions", "public", nil)
	k2, _ := keyer.Key("listRegions", "public", map[string]any{})
	if k1 != k2 || k1 != "listRegions:public:{}" {
		t.Errorf("nil = %s, empty = %s; want listRegions:public:{}", k1, k2)
	}
}

func TestKeyer_LongVariablesHashed(t *testing.T) {
	keyer := NewDefaultKeyer()

	key, err := keyer.Key("search", "public", map[string]any{"q": strings.Repeat("x", MaxKeyLength)})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	prefix := "search:public:sha256:"
	if !strings.HasPrefix(key, prefix) {
		t.Fatalf("Key() = %s, want prefix %s", key, prefix)
	}
	if hash := strings.TrimPrefix(key, prefix); len(hash) != 16 {
		t.Errorf("hash length = %d, want 16", len(hash))
	}
	if !strings.HasPrefix(key, OperationPrefix("search")) {
		t.Error("hashed key must keep the operation prefix")
	}
}

func TestKeyer_InvalidInputs(t *testing.T) {
	keyer := NewDefaultKeyer()

	tests := []struct {
		name      string
		operation string
		mode      string
		vars      any
		wantErr   error
	}{
		{"empty operation", "", "public", nil, ErrInvalidOperation},
		{"colon in operation", "a:b", "public", nil, ErrInvalidOperation},
		{"empty mode", "getProperty", "", nil, ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := keyer.Key(tt.operation, tt.mode, tt.vars)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Key() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := keyer.Key("op", "public", map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("unserializable variables should error")
	}
}

func TestKeyer_ConcurrentSafe(t *testing.T) {
	keyer := NewDefaultKeyer()
	input := map[string]any{"a": 1, "b": "two"}
	want, _ := keyer.Key("op", "public", input)

	done := make(chan string, 50)
	for i := 0; i < 50; i++ {
		go func() {
			k, _ := keyer.Key("op", "public", input)
			done <- k
		}()
	}
	for i := 0; i < 50; i++ {
		if got := <-done; got != want {
			t.Errorf("concurrent Key() = %s, want %s", got, want)
		}
	}
}
