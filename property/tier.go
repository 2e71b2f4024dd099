package property

import "context"

// Attempt describes the lookup handed to each tier.
type Attempt struct {
	Class Class
	ID    string

	// EdgeNotFound is set once the edge tier has answered 404.
	EdgeNotFound bool
}

// OutcomeKind is the class of a tier outcome.
type OutcomeKind int

const (
	// KindMiss falls through to the next tier.
	KindMiss OutcomeKind = iota
	// KindHit resolves the property.
	KindHit
	// KindGone is terminal.
	KindGone
	// KindFailed counts toward the retry ceiling.
	KindFailed
)

// Outcome is the result of one tier attempt.
type Outcome struct {
	Kind     OutcomeKind
	Property *Property

	// NotFound marks an edge 404, which gates the origin tier.
	NotFound bool

	// Err is the tier error, if any. A miss may carry one for logging.
	Err error
}

// Tier is one strategy in a cascading chain.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: must honor cancellation and deadlines.
//   - Errors: tiers never return errors directly; failures are outcomes.
//     Only the authoritative tier reports KindFailed.
type Tier interface {
	Name() Provenance
	Stage() Status
	Attempt(ctx context.Context, a Attempt) Outcome
}

func hit(p *Property) Outcome {
	if p.IsDeleted() {
		return Outcome{Kind: KindGone, Property: p}
	}
	return Outcome{Kind: KindHit, Property: p}
}
