// Package auth decides which access mode a request runs in.
//
// Token issuance and refresh belong to the host application. This package
// only consumes what the host exposes: whether a caller identity is currently
// resolvable, and the bearer token to attach when it is. Requests run either
// in ModeAuthenticated or ModePublic; ResolveMode probes per request and
// honors a forced-public override for reads that must never carry identity.
package auth
