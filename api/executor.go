package api

import (
	"context"

	"github.com/jonwraymond/rentdata/auth"
)

// Executor runs requests against the authoritative API.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: must honor cancellation and deadlines.
//   - Errors: a response carrying an error list is returned as a
//     *ResponseError alongside the decoded Response.
type Executor interface {
	Execute(ctx context.Context, req Request, mode auth.Mode) (*Response, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, req Request, mode auth.Mode) (*Response, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, req Request, mode auth.Mode) (*Response, error) {
	return f(ctx, req, mode)
}
