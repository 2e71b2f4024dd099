// Package observe provides logging and telemetry for the resolvers.
//
// Every cascading resolver reports each tier attempt through Instrumentation,
// which opens a span, records the outcome counter and duration histogram and
// writes a structured log line. Without explicit setup everything is a no-op.
package observe
