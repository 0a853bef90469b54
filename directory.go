package skagent

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// Directory is the collection of live agents for one engine runtime.
//
// # Overview
//
// Directory is the single point through which events reach agents. It:
//   - Stores registered agents in registration order
//   - Fans each thrown event out to agents listening to its kind
//   - Answers the fast-path question "is anybody listening at all?"
//
// Each runtime owns one Directory; tests create a fresh one per case.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Registration and removal take a
// mutex and publish a new slice; dispatch iterates an immutable snapshot, so a
// concurrent registration never disturbs an in-flight fan-out. Handlers run on
// the goroutine that throws the event.
type Directory struct {
	mu     sync.Mutex
	agents atomic.Pointer[[]*Agent]
	logger *slog.Logger
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	d := &Directory{logger: slog.Default()}
	empty := make([]*Agent, 0)
	d.agents.Store(&empty)
	return d
}

// WithLogger sets the logger used for registration diagnostics.
func (d *Directory) WithLogger(logger *slog.Logger) *Directory {
	if logger != nil {
		d.logger = logger
	}
	return d
}

func (d *Directory) snapshot() []*Agent {
	return *d.agents.Load()
}

// RegisterAgent creates an agent listening to kinds and appends it. No
// deduplication happens here; callers that need at most one agent per
// purpose must track that themselves.
//
// Panics if owner or handler is nil.
func (d *Directory) RegisterAgent(owner *Addon, handler Handler, kinds ...EventKind) *Agent {
	if owner == nil {
		panic("skagent: RegisterAgent with nil owner")
	}
	if handler == nil {
		panic("skagent: RegisterAgent with nil handler")
	}
	agent := newAgent(owner, handler, kinds)

	d.mu.Lock()
	next := append(slices.Clone(d.snapshot()), agent)
	d.agents.Store(&next)
	d.mu.Unlock()

	d.logger.Debug("agent registered",
		"agent", agent.id.String(),
		"owner", owner.Name,
		"kinds", len(kinds),
	)
	return agent
}

// UnregisterAgent clears the agent's listeners and removes it.
//
// Panics if the agent is not currently registered.
func (d *Directory) UnregisterAgent(agent *Agent) {
	d.mu.Lock()
	current := d.snapshot()
	idx := slices.Index(current, agent)
	if idx < 0 {
		d.mu.Unlock()
		panic("skagent: UnregisterAgent of an agent that is not registered")
	}
	agent.clear()
	next := slices.Delete(slices.Clone(current), idx, idx+1)
	d.agents.Store(&next)
	d.mu.Unlock()

	d.logger.Debug("agent unregistered", "agent", agent.id.String(), "owner", agent.owner.Name)
}

// HasAgent reports whether some live agent belongs to owner.
func (d *Directory) HasAgent(owner *Addon) bool {
	for _, a := range d.snapshot() {
		if a.owner == owner {
			return true
		}
	}
	return false
}

// IsTrackingEnabled reports whether at least one agent is registered.
// Emitters check this before building an event.
func (d *Directory) IsTrackingEnabled() bool {
	return len(d.snapshot()) > 0
}

// Len returns the number of registered agents.
func (d *Directory) Len() int {
	return len(d.snapshot())
}

// Agents returns the registered agents in registration order.
func (d *Directory) Agents() []*Agent {
	return slices.Clone(d.snapshot())
}

// ThrowEvent delivers event to every agent listening to its kind, in
// registration order, on the calling goroutine. Returns the number of
// handler invocations.
//
// Callers must check IsTrackingEnabled first; throwing while no agent is
// registered panics.
func (d *Directory) ThrowEvent(event Event) int {
	agents := d.snapshot()
	if len(agents) == 0 {
		panic("skagent: ThrowEvent while tracking is disabled")
	}
	return fanOut(agents, event)
}

func fanOut(agents []*Agent, event Event) int {
	delivered := 0
	for _, a := range agents {
		if a.deliver(event) {
			delivered++
		}
	}
	return delivered
}
