// Package cache provides the building blocks shared by every client-side cache.
//
// It provides the Entry model with read-time TTL validity, deterministic
// request identity keys, TTL policies and a bounded in-memory tier that keeps
// expired entries around for stale-on-error fallback.
package cache
