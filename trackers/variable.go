package trackers

import "github.com/LifeMC/skagent"

// VariableTracker reports variables that were set to none. While registered
// it also turns on the engine's none-value warnings, and turns them back off
// on unregistration only if it was the one that turned them on.
type VariableTracker struct {
	base
	settings *skagent.Settings

	// changedFlag records that Register flipped the warning toggle.
	changedFlag bool
}

// NewVariableTracker creates an unregistered VariableTracker.
func NewVariableTracker(dir *skagent.Directory, target skagent.Target, settings *skagent.Settings, opts Options) *VariableTracker {
	if settings == nil {
		panic("trackers: nil settings")
	}
	t := &VariableTracker{settings: settings}
	t.init(Variables, dir, target, opts)
	return t
}

// ChangedWarnFlag reports whether this tracker currently holds the
// none-value warning toggle on.
func (t *VariableTracker) ChangedWarnFlag() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changedFlag
}

// Register enables none-value warnings if they were off and subscribes to
// variable change events.
func (t *VariableTracker) Register() Tracker {
	t.register(t.handle, skagent.KindVariableChangeEnd)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.changedFlag && !t.settings.WarnWhenUsingNoneValues() {
		t.changedFlag = true
		t.settings.SetWarnWhenUsingNoneValues(true)
	}
	return t
}

// Unregister restores the warning toggle if Register changed it and removes
// the subscription.
func (t *VariableTracker) Unregister() Tracker {
	t.unregister()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.changedFlag && t.settings.WarnWhenUsingNoneValues() {
		t.changedFlag = false
		t.settings.SetWarnWhenUsingNoneValues(false)
	}
	return t
}

func (t *VariableTracker) handle(event skagent.Event) {
	switch e := event.(type) {
	case *skagent.VariableChangeEndEvent:
		if e.IsNone() {
			t.send("Variable %s is set to a none value!", e.Variable.Name())
		}
	default:
		t.unexpected(event)
	}
}
