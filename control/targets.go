package control

import (
	"slices"
	"strings"
	"sync"

	"github.com/LifeMC/skagent"
)

// TargetResolver maps a target name from an effect line to a Target.
type TargetResolver interface {
	ResolveTarget(name string) (skagent.Target, bool)
}

// Targets is a directory of named output targets. It always contains the
// console target. Names are matched case-insensitively.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Targets struct {
	mu     sync.RWMutex
	byName map[string]skagent.Target
}

// NewTargets creates a Targets holding console under skagent.ConsoleName.
// Panics if console is nil.
func NewTargets(console skagent.Target) *Targets {
	if console == nil {
		panic("control: nil console target")
	}
	return &Targets{
		byName: map[string]skagent.Target{skagent.ConsoleName: console},
	}
}

// Add registers target under its name. Returns false if the name is taken.
func (t *Targets) Add(target skagent.Target) bool {
	key := strings.ToLower(target.Name())
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byName[key]; ok {
		return false
	}
	t.byName[key] = target
	return true
}

// Remove drops the target called name. The console cannot be removed.
func (t *Targets) Remove(name string) bool {
	key := strings.ToLower(name)
	if key == skagent.ConsoleName {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byName[key]; !ok {
		return false
	}
	delete(t.byName, key)
	return true
}

// ResolveTarget implements TargetResolver.
func (t *Targets) ResolveTarget(name string) (skagent.Target, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	target, ok := t.byName[strings.ToLower(name)]
	return target, ok
}

// Console returns the console target.
func (t *Targets) Console() skagent.Target {
	target, _ := t.ResolveTarget(skagent.ConsoleName)
	return target
}

// Names returns the registered target names, sorted.
func (t *Targets) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.byName))
	for _, target := range t.byName {
		names = append(names, target.Name())
	}
	t.mu.RUnlock()
	slices.Sort(names)
	return names
}
