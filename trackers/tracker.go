package trackers

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LifeMC/skagent"
)

// DefaultPrefix starts every line a tracker sends.
const DefaultPrefix = "[Skript Tracker] "

// Tracker formats a fixed set of event kinds into text lines for one target.
// While registered it owns exactly one agent in the directory.
type Tracker interface {
	// Kind returns the strategy this tracker implements.
	Kind() Kind

	// Target returns where formatted lines go.
	Target() skagent.Target

	// Register creates the tracker's agent. Panics if already registered.
	Register() Tracker

	// Unregister removes the tracker's agent. Panics if not registered.
	Unregister() Tracker

	// Active reports whether the tracker currently owns an agent.
	Active() bool

	// Agent returns the live agent, or nil when inactive.
	Agent() *skagent.Agent

	// Options returns the options the tracker formats with.
	Options() Options

	// SetOptions replaces the options. Reports false, leaving them unchanged,
	// while the tracker is registered.
	SetOptions(opts Options) bool
}

// Options configures tracker construction.
type Options struct {
	// Owner is the addon the agent is registered under. Defaults to
	// skagent.CoreAddon.
	Owner *skagent.Addon

	// Prefix starts every line. Empty means DefaultPrefix.
	Prefix string

	// DelayThreshold is the minimum continuation run time reported by the
	// delay tracker. Zero reports every continuation that took any time.
	DelayThreshold time.Duration
}

func (o Options) withDefaults() Options {
	if o.Owner == nil {
		o.Owner = skagent.CoreAddon
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	return o
}

// New constructs the tracker for kind without registering it. Panics on an
// undeclared kind.
func New(kind Kind, dir *skagent.Directory, target skagent.Target, settings *skagent.Settings, opts Options) Tracker {
	switch kind {
	case Functions:
		return NewFunctionTracker(dir, target, opts)
	case Loops:
		return NewLoopTracker(dir, target, opts)
	case Resolver:
		return NewResolverTracker(dir, target, opts)
	case Delays:
		return NewDelayTracker(dir, target, opts)
	case Variables:
		return NewVariableTracker(dir, target, settings, opts)
	default:
		panic(fmt.Sprintf("trackers: no tracker for %s", kind))
	}
}

// base carries the agent bookkeeping shared by all trackers.
type base struct {
	kind   Kind
	dir    *skagent.Directory
	target skagent.Target

	// opts is read by handlers without holding mu.
	opts atomic.Pointer[Options]

	mu    sync.Mutex
	agent *skagent.Agent
}

func (b *base) init(kind Kind, dir *skagent.Directory, target skagent.Target, opts Options) {
	if dir == nil {
		panic("trackers: nil directory")
	}
	if target == nil {
		panic("trackers: nil target")
	}
	b.kind = kind
	b.dir = dir
	b.target = target
	opts = opts.withDefaults()
	b.opts.Store(&opts)
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Target() skagent.Target {
	return b.target
}

func (b *base) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.agent != nil
}

func (b *base) Agent() *skagent.Agent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.agent
}

func (b *base) Options() Options {
	return *b.opts.Load()
}

func (b *base) SetOptions(opts Options) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.agent != nil {
		return false
	}
	opts = opts.withDefaults()
	b.opts.Store(&opts)
	return true
}

func (b *base) register(handler skagent.Handler, kinds ...skagent.EventKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.agent != nil {
		panic(fmt.Sprintf("trackers: %s tracker for %q is already registered", b.kind, b.target.Name()))
	}
	b.agent = b.dir.RegisterAgent(b.Options().Owner, handler, kinds...)
}

func (b *base) unregister() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.agent == nil {
		panic(fmt.Sprintf("trackers: %s tracker for %q is not registered", b.kind, b.target.Name()))
	}
	b.dir.UnregisterAgent(b.agent)
	b.agent = nil
}

// send writes one prefixed line to the target.
func (b *base) send(format string, args ...any) {
	b.target.Send(b.Options().Prefix + fmt.Sprintf(format, args...))
}

// unexpected reports an event the tracker never subscribed to.
func (b *base) unexpected(event skagent.Event) {
	panic(fmt.Sprintf("trackers: %s tracker received %s", b.kind, event.Kind()))
}

func millis(d time.Duration) int64 {
	return d.Milliseconds()
}
