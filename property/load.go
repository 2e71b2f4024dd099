package property

import (
	"context"
	"sync"
)

// Load is one logical "load this property" operation. It owns the
// FetchState; discard the Load to discard the state.
type Load struct {
	resolver *Resolver
	class    Class
	id       string

	mu     sync.Mutex
	state  FetchState
	status Status
	last   *Result
}

// NewLoad starts an idle Load.
func (r *Resolver) NewLoad(class Class, id string) *Load {
	return &Load{resolver: r, class: class, id: id, status: StatusIdle}
}

// Load resolves the property. A previous resolved or terminal result is
// returned as is.
func (l *Load) Load(ctx context.Context) Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last != nil && (l.last.Resolved() || l.last.Terminal()) {
		return *l.last
	}
	return l.run(ctx)
}

// Retry runs another pass after a retryable failure, or refreshes a resolved
// property. A terminal result is returned without attempting any tier.
func (l *Load) Retry(ctx context.Context) Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last != nil && l.last.Terminal() {
		return *l.last
	}
	return l.run(ctx)
}

func (l *Load) run(ctx context.Context) Result {
	res := l.resolver.Resolve(ctx, l.class, l.id, &l.state)
	l.status = res.Status
	l.last = &res
	return res
}

// State returns a copy of the retry accounting.
func (l *Load) State() FetchState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Status returns the last observed status.
func (l *Load) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}
