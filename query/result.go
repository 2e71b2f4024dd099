package query

import (
	"encoding/json"
	"fmt"
	"time"
)

// Source names the tier that satisfied a query.
type Source string

const (
	SourceMemory     Source = "memory"
	SourcePersistent Source = "persistent"
	SourceNetwork    Source = "network"
	SourceStale      Source = "stale"
)

// Options tune a single Query call.
type Options struct {
	// TTL overrides the cache policy TTL for this call. Zero uses the default.
	TTL time.Duration

	// ForcePublic executes without caller identity even when one exists.
	ForcePublic bool

	// NetworkOnly skips cache reads. The fresh result is still stored.
	NetworkOnly bool
}

// Result is the payload of a query together with its provenance.
type Result struct {
	Data     json.RawMessage
	Source   Source
	Key      string
	StoredAt time.Time
}

// Stale reports whether the result was served from an expired entry.
func (r Result) Stale() bool {
	return r.Source == SourceStale
}

// Decode unmarshals a result's payload into T.
func Decode[T any](r Result) (T, error) {
	var out T
	if len(r.Data) == 0 {
		return out, ErrEmptyResponse
	}
	if err := json.Unmarshal(r.Data, &out); err != nil {
		return out, fmt.Errorf("query: decode %q: %w", r.Key, err)
	}
	return out, nil
}

// Stats reports lookup counters for the lifetime of a Cache.
type Stats struct {
	Hits    int64
	Misses  int64
	HitRate float64
}
