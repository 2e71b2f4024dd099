// Package property resolves single property records across cascading tiers.
//
// Each Class owns an ordered tier list: a local persistent cache, the edge
// CDN, an optional origin fallback through the API in public mode, and the
// authoritative API through the query cache. Tiers run strictly in order.
// A deleted marker anywhere is terminal (ReasonGone); repeated authoritative
// failures are terminal after MaxRetries (ReasonExhausted). The resolver
// never retries on its own: callers drive retries through a Load.
package property
