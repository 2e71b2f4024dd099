package property

import (
	"context"
	"encoding/json"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/query"
)

// Operation is the API call that fetches one property.
type Operation struct {
	Name  string
	Query string
	// Field is the top-level data field holding the record.
	Field string
}

// DefaultOperations are the API calls per class.
func DefaultOperations() map[Class]Operation {
	return map[Class]Operation{
		ClassBooking: {
			Name:  "getBookingProperty",
			Query: "query getBookingProperty($id: ID!) { property: bookingProperty(id: $id) { id title description price currency region district ward street latitude longitude images status deleted updatedAt } }",
			Field: "property",
		},
		ClassRental: {
			Name:  "getRentalProperty",
			Query: "query getRentalProperty($id: ID!) { property: rentalProperty(id: $id) { id title description price currency region district ward street latitude longitude images status deleted updatedAt } }",
			Field: "property",
		},
	}
}

// apiTier fetches through the query cache. In origin mode it is forced
// public, runs only after an edge 404 and never reports failures.
type apiTier struct {
	queries *query.Cache
	ops     map[Class]Operation
	origin  bool
}

// NewAPITier creates the authoritative tier.
func NewAPITier(queries *query.Cache, ops map[Class]Operation) Tier {
	return &apiTier{queries: queries, ops: ops}
}

// NewOriginTier creates the public origin fallback tier.
func NewOriginTier(queries *query.Cache, ops map[Class]Operation) Tier {
	return &apiTier{queries: queries, ops: ops, origin: true}
}

func (t *apiTier) Name() Provenance {
	if t.origin {
		return ProvenanceOrigin
	}
	return ProvenanceAPI
}

func (t *apiTier) Stage() Status {
	if t.origin {
		return StatusLoadingOrigin
	}
	return StatusLoadingFallback
}

func (t *apiTier) Attempt(ctx context.Context, a Attempt) Outcome {
	if t.origin && !a.EdgeNotFound {
		return Outcome{Kind: KindMiss}
	}
	op, ok := t.ops[a.Class]
	if !ok {
		return t.failed(ErrUnknownClass)
	}

	res, err := t.queries.Query(ctx, api.Request{
		Operation: op.Name,
		Query:     op.Query,
		Variables: map[string]any{"id": a.ID},
	}, query.Options{ForcePublic: t.origin})
	if err != nil {
		if api.IsNotFound(err) && !t.origin {
			return Outcome{Kind: KindGone, Err: err}
		}
		return t.failed(err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(res.Data, &envelope); err != nil {
		return t.failed(decodeError(err))
	}
	raw, ok := envelope[op.Field]
	if !ok || string(raw) == "null" {
		if t.origin {
			return Outcome{Kind: KindMiss}
		}
		return Outcome{Kind: KindGone, Err: api.ErrNotFound}
	}
	var p Property
	if err := json.Unmarshal(raw, &p); err != nil {
		return t.failed(decodeError(err))
	}
	if p.ID == "" {
		p.ID = a.ID
	}
	return hit(&p)
}

func (t *apiTier) failed(err error) Outcome {
	if t.origin {
		return Outcome{Kind: KindMiss, Err: err}
	}
	return Outcome{Kind: KindFailed, Err: err}
}
