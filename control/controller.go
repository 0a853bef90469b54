package control

import (
	"log/slog"

	"github.com/LifeMC/skagent/trackers"
)

// Controller runs effect lines against a registry.
type Controller struct {
	registry *trackers.Registry
	targets  TargetResolver
	logger   *slog.Logger
}

// NewController creates a Controller driving registry with targets resolved
// by targets.
func NewController(registry *trackers.Registry, targets TargetResolver) *Controller {
	return &Controller{
		registry: registry,
		targets:  targets,
		logger:   slog.Default(),
	}
}

// WithLogger sets the logger configuration errors are reported to.
func (c *Controller) WithLogger(logger *slog.Logger) *Controller {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Registry returns the registry the controller drives.
func (c *Controller) Registry() *trackers.Registry {
	return c.registry
}

// Run parses and executes line. Syntax errors are returned without side
// effects. Configuration errors are logged and returned after the valid part
// of the effect has been applied.
func (c *Controller) Run(line string) (int, error) {
	eff, err := Parse(line)
	if err != nil {
		return 0, err
	}
	changes, err := eff.Execute(c.registry, c.targets)
	if err != nil {
		c.logger.Warn("agent effect partially applied",
			"effect", eff.String(),
			"changes", changes,
			"error", err,
		)
	}
	c.logger.Debug("agent effect executed", "effect", eff.String(), "changes", changes)
	return changes, err
}
