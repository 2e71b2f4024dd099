package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for cache operations.
var (
	ErrInvalidKey       = errors.New("cache: key is invalid")
	ErrInvalidOperation = errors.New("cache: operation name is invalid")
	ErrCorruptEntry     = errors.New("cache: persisted entry is corrupt")
)

// Entry is one cached value. Entries are values: a write always replaces
// the previous entry, it never mutates it.
type Entry[T any] struct {
	Data      T         `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	SourceKey string    `json:"sourceKey"`
}

// NewEntry stamps data with now.
func NewEntry[T any](data T, sourceKey string, now time.Time) Entry[T] {
	return Entry[T]{Data: data, Timestamp: now, SourceKey: sourceKey}
}

// Age returns how long ago the entry was written.
func (e Entry[T]) Age(now time.Time) time.Duration {
	return now.Sub(e.Timestamp)
}

// Valid reports whether the entry is still fresh under ttl.
// Validity is computed on every read; it is never stored.
func (e Entry[T]) Valid(now time.Time, ttl time.Duration) bool {
	if e.Timestamp.IsZero() {
		return false
	}
	return e.Age(now) < ttl
}

// Encode serializes an entry for a persistent store.
func Encode[T any](e Entry[T]) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("cache: encode entry %q: %w", e.SourceKey, err)
	}
	return string(data), nil
}

// Decode parses an entry written by Encode.
func Decode[T any](raw string) (Entry[T], error) {
	var e Entry[T]
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Entry[T]{}, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	if e.Timestamp.IsZero() {
		return Entry[T]{}, fmt.Errorf("%w: missing timestamp", ErrCorruptEntry)
	}
	return e, nil
}
