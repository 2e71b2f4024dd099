// Package kv defines the persistent key-value store port used by the caches.
//
// The store is a flat string-to-string key space with last-write-wins
// semantics. Adapters are provided for process memory, a directory of files
// and Redis. Consumers namespace their keys with Prefixed so that the query
// cache, the property cache and the location directory can share one store
// without colliding.
package kv
