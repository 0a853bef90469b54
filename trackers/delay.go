package trackers

import (
	"time"

	"github.com/LifeMC/skagent"
)

// DelayTracker reports wait statements and the run time of the task that
// continues after each wait. Continuations faster than the threshold are not
// reported.
type DelayTracker struct {
	base
}

// NewDelayTracker creates an unregistered DelayTracker.
func NewDelayTracker(dir *skagent.Directory, target skagent.Target, opts Options) *DelayTracker {
	t := &DelayTracker{}
	t.init(Delays, dir, target, opts)
	return t
}

// Threshold returns the minimum reported continuation run time.
func (t *DelayTracker) Threshold() time.Duration {
	return t.Options().DelayThreshold
}

// Register subscribes to delay start and end events.
func (t *DelayTracker) Register() Tracker {
	t.register(t.handle, skagent.KindDelayStart, skagent.KindDelayEnd)
	return t
}

// Unregister removes the subscription.
func (t *DelayTracker) Unregister() Tracker {
	t.unregister()
	return t
}

func (t *DelayTracker) handle(event skagent.Event) {
	switch e := event.(type) {
	case *skagent.DelayEndEvent:
		if e.Elapsed() > t.Options().DelayThreshold {
			t.send("Waited for %d ms, after that ran a task which is completed in %d ms.",
				millis(e.Duration), millis(e.Elapsed()))
		}
	case *skagent.DelayStartEvent:
		t.send("Waiting for %d milliseconds..", millis(e.Duration))
	default:
		t.unexpected(event)
	}
}
