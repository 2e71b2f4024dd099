package cache

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemorySize is the entry bound used when none is configured.
const DefaultMemorySize = 500

// MemoryTier is a bounded in-memory map of entries.
//
// Entries are kept after they expire so callers can fall back to them; only
// LRU eviction and explicit removal delete them. Safe for concurrent use.
type MemoryTier[T any] struct {
	entries *lru.Cache[string, Entry[T]]
}

// NewMemoryTier creates a tier bounded to size entries.
func NewMemoryTier[T any](size int) *MemoryTier[T] {
	if size <= 0 {
		size = DefaultMemorySize
	}
	// lru.New only fails for non-positive sizes.
	entries, _ := lru.New[string, Entry[T]](size)
	return &MemoryTier[T]{entries: entries}
}

// Get returns the entry for key regardless of freshness and marks it
// recently used.
func (m *MemoryTier[T]) Get(key string) (Entry[T], bool) {
	return m.entries.Get(key)
}

// Peek returns the entry without updating recency.
func (m *MemoryTier[T]) Peek(key string) (Entry[T], bool) {
	return m.entries.Peek(key)
}

// Set replaces the entry for key.
func (m *MemoryTier[T]) Set(key string, e Entry[T]) {
	m.entries.Add(key, e)
}

// Remove deletes key.
func (m *MemoryTier[T]) Remove(key string) {
	m.entries.Remove(key)
}

// RemovePrefix deletes every key starting with prefix and returns the count.
func (m *MemoryTier[T]) RemovePrefix(prefix string) int {
	n := 0
	for _, k := range m.entries.Keys() {
		if strings.HasPrefix(k, prefix) {
			m.entries.Remove(k)
			n++
		}
	}
	return n
}

// Purge deletes every entry.
func (m *MemoryTier[T]) Purge() {
	m.entries.Purge()
}

// Len returns the number of held entries, fresh or expired.
func (m *MemoryTier[T]) Len() int {
	return m.entries.Len()
}
