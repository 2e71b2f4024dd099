package location

import (
	"context"
	"fmt"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/geocode"
	"github.com/jonwraymond/rentdata/query"
)

// Source produces a fresh directory.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: any error makes the Cache fall back to its persisted copy.
type Source interface {
	Directory(ctx context.Context) (Directory, error)
}

// Operation is the API operation that lists locations.
const Operation = "listLocations"

const listLocationsQuery = `query listLocations { locations { region districts } }`

// APISource fetches the directory through the query cache in public mode.
type APISource struct {
	queries *query.Cache
}

// NewAPISource creates an APISource.
func NewAPISource(queries *query.Cache) (*APISource, error) {
	if queries == nil {
		return nil, ErrNilQueryCache
	}
	return &APISource{queries: queries}, nil
}

type locationsPayload struct {
	Locations []struct {
		Region    string   `json:"region"`
		Districts []string `json:"districts"`
	} `json:"locations"`
}

func (s *APISource) Directory(ctx context.Context) (Directory, error) {
	res, err := s.queries.Query(ctx, api.Request{
		Operation: Operation,
		Query:     listLocationsQuery,
	}, query.Options{ForcePublic: true, NetworkOnly: true})
	if err != nil {
		return nil, err
	}
	payload, err := query.Decode[locationsPayload](res)
	if err != nil {
		return nil, err
	}
	if len(payload.Locations) == 0 {
		return nil, fmt.Errorf("location: %s returned no regions", Operation)
	}
	dir := make(Directory, len(payload.Locations))
	for _, l := range payload.Locations {
		if l.Region == "" {
			continue
		}
		dir[l.Region] = append(dir[l.Region], l.Districts...)
	}
	return dir, nil
}

// StaticSource serves the embedded gazetteer table.
type StaticSource struct {
	gazetteer *geocode.Gazetteer
}

// NewStaticSource creates a StaticSource. A nil gazetteer uses
// geocode.DefaultGazetteer.
func NewStaticSource(g *geocode.Gazetteer) *StaticSource {
	if g == nil {
		g = geocode.DefaultGazetteer()
	}
	return &StaticSource{gazetteer: g}
}

func (s *StaticSource) Directory(context.Context) (Directory, error) {
	return Directory(s.gazetteer.Directory()), nil
}

var (
	_ Source = (*APISource)(nil)
	_ Source = (*StaticSource)(nil)
)
