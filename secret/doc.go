// Package secret resolves credentials referenced from configuration.
//
// A configuration value is first expanded strictly: ${VAR} must exist in the
// environment, and $$ emits a literal dollar. A value of the form
//
//	secretref:<provider>:<ref>
//
// or containing such a reference inline ("Bearer secretref:env:API_TOKEN") is
// then resolved through the named Provider. The env provider reads another
// environment variable; the file provider reads a mounted secret file.
package secret
