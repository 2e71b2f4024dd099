package property

import (
	"strings"
	"time"
)

// Class is a property class. Its value is also the edge resource path.
type Class string

const (
	// ClassBooking is a short-stay listing.
	ClassBooking Class = "booking"

	// ClassRental is a long-term rental.
	ClassRental Class = "rental"
)

// Property is one listing record.
type Property struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Region      string    `json:"region,omitempty"`
	District    string    `json:"district,omitempty"`
	Ward        string    `json:"ward,omitempty"`
	Street      string    `json:"street,omitempty"`
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Status      string    `json:"status,omitempty"`
	Deleted     bool      `json:"deleted,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// IsDeleted reports the explicit deleted marker.
func (p *Property) IsDeleted() bool {
	if p == nil {
		return false
	}
	return p.Deleted || strings.EqualFold(p.Status, "deleted")
}

// Provenance names the tier that produced a property.
type Provenance string

const (
	ProvenanceNone   Provenance = ""
	ProvenanceLocal  Provenance = "local"
	ProvenanceEdge   Provenance = "edge"
	ProvenanceOrigin Provenance = "origin"
	ProvenanceAPI    Provenance = "api"
)

// Status is the resolution state.
type Status string

const (
	StatusIdle            Status = "idle"
	StatusLoadingCache    Status = "loadingCache"
	StatusLoadingOrigin   Status = "loadingOrigin"
	StatusLoadingFallback Status = "loadingFallback"
	StatusResolved        Status = "resolved"
	StatusFailed          Status = "failed"
)

// Reason explains a failed result.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonGone      Reason = "gone"
	ReasonExhausted Reason = "exhausted"
)

// FetchState is the retry accounting of one logical load.
type FetchState struct {
	RetryCount int
	LastError  ErrorKind
}

// Reset zeroes the state after a successful resolution.
func (s *FetchState) Reset() {
	*s = FetchState{}
}

// Result is the outcome of one resolution attempt.
type Result struct {
	Property   *Property
	Provenance Provenance
	Status     Status
	Reason     Reason
	Retryable  bool
	// Attempts is the number of tiers tried.
	Attempts int
	Err      error
}

// Terminal reports a failure after which no retry is attempted.
func (r Result) Terminal() bool {
	return r.Status == StatusFailed && !r.Retryable
}

// Resolved reports a successful result.
func (r Result) Resolved() bool {
	return r.Status == StatusResolved
}
