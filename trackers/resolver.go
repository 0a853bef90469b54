package trackers

import "github.com/LifeMC/skagent"

// ResolverTracker reports asynchronous player lookups.
type ResolverTracker struct {
	base
}

// NewResolverTracker creates an unregistered ResolverTracker.
func NewResolverTracker(dir *skagent.Directory, target skagent.Target, opts Options) *ResolverTracker {
	t := &ResolverTracker{}
	t.init(Resolver, dir, target, opts)
	return t
}

// Register subscribes to unresolved and resolved player events.
func (t *ResolverTracker) Register() Tracker {
	t.register(t.handle, skagent.KindUnresolvedPlayer, skagent.KindResolvedPlayer)
	return t
}

// Unregister removes the subscription.
func (t *ResolverTracker) Unregister() Tracker {
	t.unregister()
	return t
}

func (t *ResolverTracker) handle(event skagent.Event) {
	switch e := event.(type) {
	case *skagent.UnresolvedPlayerEvent:
		t.send("Unresolved player added to queue: %s", e.Player.Name())
	case *skagent.ResolvedPlayerEvent:
		t.send("Unresolved player \"%s\" is now resolved.", e.Player.Name())
	default:
		t.unexpected(event)
	}
}
