// Package location caches the region/district directory used by location
// pickers.
//
// The directory is reference data: one persisted copy is reused for a long
// TTL (30 days by default), refreshed from a Source when expired, and served
// regardless of age when the Source fails. Flatten and Search turn the
// directory into a searchable list.
package location
