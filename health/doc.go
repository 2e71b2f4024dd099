// Package health reports whether the data-access layer's dependencies are
// usable.
//
// Checkers cover the persistent store (a write/read/remove round trip, plus
// a ping for Redis), upstream HTTP endpoints such as the edge cache and the
// API, and the circuit breakers that guard geocoding providers. An
// Aggregator runs them concurrently under one timeout and folds the results
// into an overall Status.
//
//	agg := health.NewAggregator(health.AggregatorConfig{})
//	agg.Register(health.NewStoreChecker("store", store))
//	agg.Register(health.NewEndpointChecker("edge", edgeURL, nil))
//	report := agg.Run(ctx)
//	fmt.Println(report.Status)
package health
