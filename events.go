package skagent

import (
	"reflect"
	"time"
)

// -----------------------------------------------------------------------------
// Event Interface
// -----------------------------------------------------------------------------

// Event is an immutable description of one interpreter occurrence. The set of
// implementations is closed; see EventKind.
type Event interface {
	Kind() EventKind
	agentEvent()
}

// EventsEqual reports whether two events are structurally equal: same kind and
// same payload, comparing argument and value slices element by element.
func EventsEqual(a, b Event) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind() && reflect.DeepEqual(a, b)
}

// -----------------------------------------------------------------------------
// Host Identities
// -----------------------------------------------------------------------------

// Function identifies a script function known to the interpreter.
type Function interface {
	Name() string
}

// Variable identifies a script variable.
type Variable interface {
	Name() string
}

// Player identifies a player whose data may be resolved asynchronously.
type Player interface {
	Name() string
}

// -----------------------------------------------------------------------------
// Function Events
// -----------------------------------------------------------------------------

// FunctionStartEvent is emitted before a script function body runs.
type FunctionStartEvent struct {
	Function Function

	// Arguments holds one value array per declared parameter.
	Arguments [][]any
}

func (*FunctionStartEvent) Kind() EventKind { return KindFunctionStart }
func (*FunctionStartEvent) agentEvent()     {}

// FunctionEndEvent is emitted after a script function body returns.
type FunctionEndEvent struct {
	Function  Function
	Arguments [][]any

	// StartTime and EndTime are monotonic nanoseconds from a Clock.
	StartTime int64
	EndTime   int64
}

func (*FunctionEndEvent) Kind() EventKind { return KindFunctionEnd }
func (*FunctionEndEvent) agentEvent()     {}

// Elapsed returns how long the call took.
func (e *FunctionEndEvent) Elapsed() time.Duration {
	return time.Duration(e.EndTime - e.StartTime)
}

// -----------------------------------------------------------------------------
// Loop Events
// -----------------------------------------------------------------------------

// ForLoopStartEvent is emitted on the first iteration of a counted loop.
type ForLoopStartEvent struct {
	Times int
}

func (*ForLoopStartEvent) Kind() EventKind { return KindForLoopStart }
func (*ForLoopStartEvent) agentEvent()     {}

// ForLoopEndEvent is emitted once a counted loop has run all its iterations.
type ForLoopEndEvent struct {
	Times     int
	StartTime int64
	EndTime   int64
}

func (*ForLoopEndEvent) Kind() EventKind { return KindForLoopEnd }
func (*ForLoopEndEvent) agentEvent()     {}

// Elapsed returns how long the loop took.
func (e *ForLoopEndEvent) Elapsed() time.Duration {
	return time.Duration(e.EndTime - e.StartTime)
}

// -----------------------------------------------------------------------------
// Delay Events
// -----------------------------------------------------------------------------

// DelayStartEvent is emitted when a wait statement schedules its continuation.
type DelayStartEvent struct {
	// Duration is the configured wait, not a measurement.
	Duration time.Duration
}

func (*DelayStartEvent) Kind() EventKind { return KindDelayStart }
func (*DelayStartEvent) agentEvent()     {}

// DelayEndEvent is emitted after the delayed continuation has run.
// StartTime and EndTime bracket the continuation itself, not the wait.
type DelayEndEvent struct {
	Duration  time.Duration
	StartTime int64
	EndTime   int64
}

func (*DelayEndEvent) Kind() EventKind { return KindDelayEnd }
func (*DelayEndEvent) agentEvent()     {}

// Elapsed returns how long the continuation took.
func (e *DelayEndEvent) Elapsed() time.Duration {
	return time.Duration(e.EndTime - e.StartTime)
}

// -----------------------------------------------------------------------------
// Variable Events
// -----------------------------------------------------------------------------

// VariableChangeEndEvent is emitted after a variable write completed.
type VariableChangeEndEvent struct {
	Variable Variable

	// NewValue is nil when the variable was set to none.
	NewValue []any
}

func (*VariableChangeEndEvent) Kind() EventKind { return KindVariableChangeEnd }
func (*VariableChangeEndEvent) agentEvent()     {}

// IsNone reports whether the write left the variable without a value.
func (e *VariableChangeEndEvent) IsNone() bool {
	return e.NewValue == nil
}

// -----------------------------------------------------------------------------
// Player Resolution Events
// -----------------------------------------------------------------------------

// UnresolvedPlayerEvent is emitted when a player lookup is queued.
type UnresolvedPlayerEvent struct {
	Player Player
}

func (*UnresolvedPlayerEvent) Kind() EventKind { return KindUnresolvedPlayer }
func (*UnresolvedPlayerEvent) agentEvent()     {}

// ResolvedPlayerEvent is emitted when a queued player lookup completes.
type ResolvedPlayerEvent struct {
	Player Player
}

func (*ResolvedPlayerEvent) Kind() EventKind { return KindResolvedPlayer }
func (*ResolvedPlayerEvent) agentEvent()     {}
