package trackers

import "github.com/LifeMC/skagent"

// LoopTracker reports counted loops and how long they take.
type LoopTracker struct {
	base
}

// NewLoopTracker creates an unregistered LoopTracker.
func NewLoopTracker(dir *skagent.Directory, target skagent.Target, opts Options) *LoopTracker {
	t := &LoopTracker{}
	t.init(Loops, dir, target, opts)
	return t
}

// Register subscribes to loop start and end events.
func (t *LoopTracker) Register() Tracker {
	t.register(t.handle, skagent.KindForLoopStart, skagent.KindForLoopEnd)
	return t
}

// Unregister removes the subscription.
func (t *LoopTracker) Unregister() Tracker {
	t.unregister()
	return t
}

func (t *LoopTracker) handle(event skagent.Event) {
	switch e := event.(type) {
	case *skagent.ForLoopEndEvent:
		t.send("Looping \"%d\" times took %d ms to complete.", e.Times, millis(e.Elapsed()))
	case *skagent.ForLoopStartEvent:
		t.send("Looping \"%d\" times now...", e.Times)
	default:
		t.unexpected(event)
	}
}
