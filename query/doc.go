// Package query caches authoritative API responses.
//
// A Cache is an owned service instance layering a bounded in-memory tier over
// an optional persistent kv.Store. Keys are request identities: operation
// name, resolved auth mode and canonical variables. Lookups go memory, then
// persistent (promoting valid hits into memory), then the network. A network
// failure after a miss serves the last known entry for the key, even if
// expired, before giving up with ErrNoData.
//
// Mutations bypass every tier.
package query
