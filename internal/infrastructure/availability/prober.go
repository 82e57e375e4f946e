package availability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmorenov/ragchat/internal/core/domain"
)

const DefaultTimeout = time.Second

// Pinger is the bounded reachability check against the backend's listing
// endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober resolves backend reachability exactly once per process lifetime.
// The verdict cell is written once by the probing caller; callers that
// arrive while the first probe is still in flight get a conservative
// Unavailable for that call instead of blocking, and that answer is not
// cached.
type Prober struct {
	pinger  Pinger
	timeout time.Duration

	mu       sync.Mutex
	state    domain.Availability
	inFlight bool
}

func New(pinger Pinger, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		pinger:  pinger,
		timeout: timeout,
	}
}

func (p *Prober) Probe(ctx context.Context) domain.Availability {
	p.mu.Lock()
	if p.state.Resolved() {
		state := p.state
		p.mu.Unlock()
		return state
	}
	if p.inFlight {
		p.mu.Unlock()
		return domain.Unavailable
	}
	p.inFlight = true
	p.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	err := p.pinger.Ping(probeCtx)
	cancel()

	verdict := domain.Available
	if err != nil {
		verdict = domain.Unavailable
		slog.Warn("backend_unreachable", "timeout", p.timeout, "error", err)
	}

	p.mu.Lock()
	p.state = verdict
	p.inFlight = false
	p.mu.Unlock()

	slog.Info("backend_probe_resolved", "verdict", verdict.String())
	return verdict
}

// State reports the cached verdict without triggering a probe.
func (p *Prober) State() domain.Availability {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
