package skagent

import "sync/atomic"

// Settings holds engine-wide toggles that the interpreter reads while running
// scripts and that trackers may flip at runtime.
//
// All methods are safe for concurrent use.
type Settings struct {
	warnNone atomic.Bool
}

// NewSettings creates Settings with every toggle off.
func NewSettings() *Settings {
	return &Settings{}
}

// WarnWhenUsingNoneValues reports whether the interpreter should warn when a
// script reads or writes a none value.
func (s *Settings) WarnWhenUsingNoneValues() bool {
	return s.warnNone.Load()
}

// SetWarnWhenUsingNoneValues changes the none-value warning toggle.
func (s *Settings) SetWarnWhenUsingNoneValues(enabled bool) {
	s.warnNone.Store(enabled)
}
