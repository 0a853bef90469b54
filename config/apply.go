package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/control"
	"github.com/LifeMC/skagent/trackers"
)

type binding struct {
	kind   trackers.Kind
	target string
}

// Apply reconciles registry with cfg.Trackers: listed (kind, target) pairs
// end up enabled and every other live pair is disabled. Prefix and delay
// threshold reach every tracker enabled by this or a later call; trackers
// that stay enabled keep the options they were enabled with.
//
// Unknown targets are skipped and reported; the remaining pairs are still
// reconciled. Returns the number of pairs whose state changed.
func Apply(cfg *Config, registry *trackers.Registry, targets control.TargetResolver) (int, error) {
	opts := registry.Options()
	next := cfg.Options()
	opts.Prefix, opts.DelayThreshold = next.Prefix, next.DelayThreshold
	registry.SetOptions(opts)

	var errs []error
	desired := make(map[binding]skagent.Target)
	var order []binding
	for i, t := range cfg.Trackers {
		kind, err := trackers.ParseKind(t.Kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: trackers[%d]: %w", ErrInvalid, i, err))
			continue
		}
		names := t.Targets
		if len(names) == 0 {
			names = []string{skagent.ConsoleName}
		}
		for _, name := range names {
			target, ok := targets.ResolveTarget(name)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: trackers[%d]: %w: %s", ErrInvalid, i, control.ErrUnknownTarget, name))
				continue
			}
			b := binding{kind: kind, target: strings.ToLower(target.Name())}
			if _, dup := desired[b]; !dup {
				desired[b] = target
				order = append(order, b)
			}
		}
	}

	changes := 0
	for _, live := range registry.Active() {
		b := binding{kind: live.Kind, target: strings.ToLower(live.Target.Name())}
		if _, keep := desired[b]; keep {
			continue
		}
		if registry.Unregister(live.Kind, live.Target) {
			changes++
		}
	}
	for _, b := range order {
		if registry.Register(b.kind, desired[b]) {
			changes++
		}
	}
	return changes, errors.Join(errs...)
}
