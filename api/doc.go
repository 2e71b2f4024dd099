// Package api is the port to the authoritative query API.
//
// A Request names an operation and carries a variable map. The Executor
// runs it in an auth.Mode; authenticated requests carry the caller's bearer
// token and public requests carry nothing. Responses hold either data or an
// error list, and IsNotFound classifies the "content removed" case the
// resolvers treat as terminal.
package api
