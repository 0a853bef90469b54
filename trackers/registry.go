package trackers

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/LifeMC/skagent"
)

// Binding names one live (kind, target) pair.
type Binding struct {
	Kind   Kind
	Target skagent.Target
}

// trackerKey identifies a tracker. Targets are keyed by name so a host may
// hand out fresh Target values for the same destination.
type trackerKey struct {
	kind   Kind
	target string
}

// Registry keeps at most one live tracker per (kind, target).
//
// # Overview
//
// Registry is what the enable/disable effect drives. It:
//   - Creates a tracker the first time a (kind, target) pair is enabled
//   - Reuses that tracker object every later time the pair is enabled
//   - Makes repeated enables and disables no-ops
//   - Hands its current Options to a tracker whenever it is enabled again
//
// Trackers for different kinds on the same target are independent objects
// with independent lifecycles.
//
// # Thread Safety
//
// All methods are safe for concurrent use. A single mutex serializes
// registration changes; enabling trackers is not a hot path. Tracker
// handlers run on event-emitting goroutines and never touch the registry.
type Registry struct {
	dir      *skagent.Directory
	settings *skagent.Settings
	opts     Options
	logger   *slog.Logger

	mu     sync.Mutex
	cached map[trackerKey]Tracker
	active map[Tracker]skagent.Target
}

// NewRegistry creates a Registry registering agents in dir. The settings are
// handed to variable trackers.
func NewRegistry(dir *skagent.Directory, settings *skagent.Settings) *Registry {
	if settings == nil {
		settings = skagent.NewSettings()
	}
	return &Registry{
		dir:      dir,
		settings: settings,
		logger:   slog.Default(),
		cached:   make(map[trackerKey]Tracker),
		active:   make(map[Tracker]skagent.Target),
	}
}

// WithOwner sets the addon trackers register their agents under.
func (r *Registry) WithOwner(owner *skagent.Addon) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.Owner = owner
	return r
}

// WithPrefix sets the line prefix trackers format with.
func (r *Registry) WithPrefix(prefix string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.Prefix = prefix
	return r
}

// WithDelayThreshold sets the delay tracker threshold.
func (r *Registry) WithDelayThreshold(threshold time.Duration) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.DelayThreshold = threshold
	return r
}

// SetOptions replaces the tracker options in one step. Trackers that are
// enabled keep the options they were enabled with; every other tracker picks
// up opts the next time it is enabled.
func (r *Registry) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
}

// Options returns the tracker options the registry hands out.
func (r *Registry) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// WithLogger sets the logger for enable/disable diagnostics.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Directory returns the directory trackers register into.
func (r *Registry) Directory() *skagent.Directory {
	return r.dir
}

// Settings returns the engine settings handed to trackers.
func (r *Registry) Settings() *skagent.Settings {
	return r.settings
}

// Register enables kind for target. Returns false if it was already enabled.
func (r *Registry) Register(kind Kind, target skagent.Target) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	tracker := r.resolveLocked(kind, target)
	if _, live := r.active[tracker]; live {
		return false
	}
	tracker.Register()
	r.active[tracker] = target
	r.logger.Info("tracker enabled", "kind", kind.String(), "target", target.Name())
	return true
}

// Unregister disables kind for target. Returns false if it was not enabled.
func (r *Registry) Unregister(kind Kind, target skagent.Target) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	tracker, ok := r.cached[trackerKey{kind: kind, target: target.Name()}]
	if !ok {
		return false
	}
	if _, live := r.active[tracker]; !live {
		return false
	}
	delete(r.active, tracker)
	tracker.Unregister()
	r.logger.Info("tracker disabled", "kind", kind.String(), "target", target.Name())
	return true
}

// Resolve returns the tracker for (kind, target), creating and caching it if
// this pair was never seen. The tracker is not registered by this call.
func (r *Registry) Resolve(kind Kind, target skagent.Target) Tracker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(kind, target)
}

func (r *Registry) resolveLocked(kind Kind, target skagent.Target) Tracker {
	key := trackerKey{kind: kind, target: target.Name()}
	if tracker, ok := r.cached[key]; ok {
		// Inactive trackers follow option changes; live ones refuse them.
		tracker.SetOptions(r.opts)
		return tracker
	}
	tracker := New(kind, r.dir, target, r.settings, r.opts)
	r.cached[key] = tracker
	return tracker
}

// IsActive reports whether kind is enabled for target.
func (r *Registry) IsActive(kind Kind, target skagent.Target) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	tracker, ok := r.cached[trackerKey{kind: kind, target: target.Name()}]
	if !ok {
		return false
	}
	_, live := r.active[tracker]
	return live
}

// Active returns the live bindings ordered by target name, then kind.
func (r *Registry) Active() []Binding {
	r.mu.Lock()
	bindings := make([]Binding, 0, len(r.active))
	for tracker, target := range r.active {
		bindings = append(bindings, Binding{Kind: tracker.Kind(), Target: target})
	}
	r.mu.Unlock()

	slices.SortFunc(bindings, func(a, b Binding) int {
		if c := cmp.Compare(a.Target.Name(), b.Target.Name()); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	return bindings
}

// UnregisterAll disables every live tracker and returns how many were
// disabled.
func (r *Registry) UnregisterAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for tracker, target := range r.active {
		delete(r.active, tracker)
		tracker.Unregister()
		r.logger.Info("tracker disabled", "kind", tracker.Kind().String(), "target", target.Name())
		n++
	}
	return n
}
