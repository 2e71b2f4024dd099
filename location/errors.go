package location

import "errors"

var (
	// ErrUnavailable is returned when the source fails and nothing is persisted.
	ErrUnavailable = errors.New("location: directory unavailable")

	// ErrNilSource is returned when a Cache is created without a Source.
	ErrNilSource = errors.New("location: source is nil")

	// ErrNilStore is returned when a Cache is created without a store.
	ErrNilStore = errors.New("location: store is nil")

	// ErrNilQueryCache is returned when an APISource has no query cache.
	ErrNilQueryCache = errors.New("location: query cache is nil")
)
