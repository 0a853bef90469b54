package trackers

import "github.com/LifeMC/skagent"

// FunctionTracker reports when script functions start and how long they take.
type FunctionTracker struct {
	base
}

// NewFunctionTracker creates an unregistered FunctionTracker.
func NewFunctionTracker(dir *skagent.Directory, target skagent.Target, opts Options) *FunctionTracker {
	t := &FunctionTracker{}
	t.init(Functions, dir, target, opts)
	return t
}

// Register subscribes to function start and end events.
func (t *FunctionTracker) Register() Tracker {
	t.register(t.handle, skagent.KindFunctionStart, skagent.KindFunctionEnd)
	return t
}

// Unregister removes the subscription.
func (t *FunctionTracker) Unregister() Tracker {
	t.unregister()
	return t
}

func (t *FunctionTracker) handle(event skagent.Event) {
	switch e := event.(type) {
	case *skagent.FunctionEndEvent:
		t.send("The function \"%s\" took %d ms to complete.", e.Function.Name(), millis(e.Elapsed()))
	case *skagent.FunctionStartEvent:
		t.send("The function \"%s\" is running now...", e.Function.Name())
	default:
		t.unexpected(event)
	}
}
