package observe

import "errors"

var (
	ErrMissingServiceName     = errors.New("observe: service name is required")
	ErrInvalidSamplePct       = errors.New("observe: sample percentage must be between 0.0 and 1.0")
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")
	ErrInvalidLogLevel        = errors.New("observe: invalid log level")
	ErrNilObserver            = errors.New("observe: observer is nil")

	// ErrEndpointNotConfigured is returned for an OTLP exporter with no
	// endpoint in config or OTEL_EXPORTER_OTLP_ENDPOINT.
	ErrEndpointNotConfigured = errors.New("observe: endpoint not configured")
)
