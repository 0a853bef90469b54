package skagent

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Addon identifies the engine addon that owns an agent.
type Addon struct {
	Name string
}

// CoreAddon is the owner used by the built-in trackers.
var CoreAddon = &Addon{Name: "Skript"}

// Handler receives events delivered to an agent.
type Handler func(Event)

// Agent is a single subscription: a handler plus the event kinds it wants.
//
// The interpreter never sees agents directly; it only asks the Directory
// whether anyone listens. Listener reads are lock-free so dispatch on the
// producer goroutine never waits on a concurrent AddListener from the control
// goroutine.
//
// Agents are created by Directory.RegisterAgent and identified by pointer.
type Agent struct {
	id      uuid.UUID
	owner   *Addon
	handler Handler

	mu    sync.Mutex
	kinds []EventKind // ordered, no duplicates
	mask  atomic.Uint32
}

func newAgent(owner *Addon, handler Handler, kinds []EventKind) *Agent {
	a := &Agent{
		id:      uuid.New(),
		owner:   owner,
		handler: handler,
	}
	a.AddListeners(kinds...)
	return a
}

// ID returns the random identifier assigned at registration.
func (a *Agent) ID() uuid.UUID {
	return a.id
}

// Owner returns the addon that registered this agent.
func (a *Agent) Owner() *Addon {
	return a.owner
}

// AddListener adds kind to the listened set.
// Returns true if it was not already present.
func (a *Agent) AddListener(kind EventKind) bool {
	return a.AddListeners(kind)
}

// AddListeners adds every given kind. Returns true if at least one was new.
// Panics on an undeclared kind.
func (a *Agent) AddListeners(kinds ...EventKind) bool {
	if len(kinds) == 0 {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	added := false
	mask := a.mask.Load()
	for _, k := range kinds {
		if !k.Valid() {
			panic("skagent: cannot listen to " + k.String())
		}
		if mask&k.bit() != 0 {
			continue
		}
		mask |= k.bit()
		a.kinds = append(a.kinds, k)
		added = true
	}
	a.mask.Store(mask)
	return added
}

// HasListener reports whether the agent listens to kind.
func (a *Agent) HasListener(kind EventKind) bool {
	return a.mask.Load()&kind.bit() != 0
}

// HasListeners reports whether the agent listens to all given kinds.
func (a *Agent) HasListeners(kinds ...EventKind) bool {
	mask := a.mask.Load()
	for _, k := range kinds {
		if mask&k.bit() == 0 {
			return false
		}
	}
	return true
}

// RemoveListener removes kind. Returns true if it was present.
func (a *Agent) RemoveListener(kind EventKind) bool {
	return a.RemoveListeners(kind)
}

// RemoveListeners removes every given kind. Returns true if at least one was
// present.
func (a *Agent) RemoveListeners(kinds ...EventKind) bool {
	if len(kinds) == 0 {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	removed := false
	mask := a.mask.Load()
	for _, k := range kinds {
		if mask&k.bit() == 0 {
			continue
		}
		mask &^= k.bit()
		a.kinds = slices.DeleteFunc(a.kinds, func(x EventKind) bool { return x == k })
		removed = true
	}
	a.mask.Store(mask)
	return removed
}

// ListenedKinds returns a copy of the listened set in insertion order.
func (a *Agent) ListenedKinds() []EventKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.kinds)
}

// Equal reports whether both agents have the same identity, owner and
// listened-kind set.
func (a *Agent) Equal(other *Agent) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	return a.id == other.id && a.owner == other.owner && a.mask.Load() == other.mask.Load()
}

// clear drops every listener. Used on unregistration.
func (a *Agent) clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.kinds = nil
	a.mask.Store(0)
}

// deliver hands event to the handler if the agent listens to its kind.
func (a *Agent) deliver(event Event) bool {
	if !a.HasListener(event.Kind()) {
		return false
	}
	a.handler(event)
	return true
}
