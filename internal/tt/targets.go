package tt

import (
	"sync"

	"github.com/LifeMC/skagent"
)

// Target records every line sent to it.
// Safe for concurrent use.
type Target struct {
	name  string
	mu    sync.Mutex
	lines []string
}

// NewTarget creates a recording target called name.
func NewTarget(name string) *Target {
	return &Target{name: name}
}

// Name returns the target name.
func (t *Target) Name() string {
	return t.name
}

// Send records text.
func (t *Target) Send(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, text)
}

// Lines returns the recorded lines in order.
func (t *Target) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Reset drops recorded lines.
func (t *Target) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
}

var _ skagent.Target = (*Target)(nil)
