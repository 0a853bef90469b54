// Package tt provides test helpers for the skagent packages.
package tt

import (
	"sync"

	"github.com/LifeMC/skagent"
)

// -----------------------------------------------------------------------------
// Host Identities
// -----------------------------------------------------------------------------

// Function is a named script function.
type Function string

func (f Function) Name() string { return string(f) }

// Variable is a named script variable.
type Variable string

func (v Variable) Name() string { return string(v) }

// Player is a named player.
type Player string

func (p Player) Name() string { return string(p) }

// -----------------------------------------------------------------------------
// Event Collection
// -----------------------------------------------------------------------------

// Recorder collects the events delivered to a handler.
// Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []skagent.Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Handle records event. Use it as a skagent.Handler.
func (r *Recorder) Handle(event skagent.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the recorded events in delivery order.
func (r *Recorder) Events() []skagent.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]skagent.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events in delivery order.
func (r *Recorder) Kinds() []skagent.EventKind {
	events := r.Events()
	kinds := make([]skagent.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	return kinds
}
