// Package geocode resolves location descriptors to coordinates.
//
// Resolution walks an ordered tier list and stops at the first success:
//
//  1. saved coordinates (never touches the network)
//  2. provider A, a Google Geocoding style API
//  3. provider B, a Nominatim style community geocoder, paced and rate limited
//  4. the built-in gazetteer of Tanzanian regions, districts and wards
//  5. a fixed default coordinate
//
// Resolve never fails. ResolveSync runs tiers 1, 4 and 5 only and shares their
// matching code with Resolve.
package geocode
