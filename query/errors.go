package query

import "errors"

var (
	// ErrNilExecutor indicates Config.Executor is nil.
	ErrNilExecutor = errors.New("query: executor is required")

	// ErrNoData indicates the network failed and no entry, fresh or stale,
	// exists for the key. The upstream error is wrapped alongside it.
	ErrNoData = errors.New("query: no data available")

	// ErrEmptyResponse indicates a successful response with a null payload.
	ErrEmptyResponse = errors.New("query: response carried no data")
)
