// Package config loads rentdata settings from the environment.
//
// Values come from optional dotenv files and the process environment, the
// process winning on conflict. Every variable is prefixed RENTDATA_; nested
// groups add their own prefix (RENTDATA_QUERY_TTL, RENTDATA_GEOCODE_COUNTRY).
// Credentials may be written as secretref: references and are resolved
// after parsing.
package config
