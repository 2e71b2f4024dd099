package cache

import "time"

// Policy holds the TTL rules a cache applies at read time.
//
// A zero MaxTTL leaves per-call overrides unclamped.
type Policy struct {
	DefaultTTL   time.Duration
	MaxTTL       time.Duration
	StaleOnError bool // serve an expired entry when the refresh fails
}

// DefaultPolicy is used by the query cache: 5m entries, overrides up to 24h,
// stale fallback on.
func DefaultPolicy() Policy {
	return Policy{DefaultTTL: 5 * time.Minute, MaxTTL: 24 * time.Hour, StaleOnError: true}
}

// DirectoryPolicy is used for reference data that changes rarely, such as
// the region/district directory.
func DirectoryPolicy() Policy {
	return Policy{DefaultTTL: 30 * 24 * time.Hour, StaleOnError: true}
}

// EffectiveTTL picks override when positive, else DefaultTTL, then applies
// MaxTTL.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := p.DefaultTTL
	if override > 0 {
		ttl = override
	}
	if p.MaxTTL > 0 {
		ttl = min(ttl, p.MaxTTL)
	}
	return ttl
}
