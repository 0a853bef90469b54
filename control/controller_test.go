package control

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/LifeMC/skagent/trackers"
	"github.com/stretchr/testify/assert"
)

func TestController_Run(t *testing.T) {
	e := newEnv()
	var logs bytes.Buffer
	c := NewController(e.registry, e.targets).
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	changes, err := c.Run(`enable agent variables, bogus`)

	assert.Equal(t, 1, changes)
	assert.ErrorIs(t, err, trackers.ErrUnknownKind)
	assert.Contains(t, logs.String(), "agent effect partially applied")
	assert.True(t, e.registry.IsActive(trackers.Variables, e.console))
	assert.Same(t, e.registry, c.Registry())
}

func TestController_RunSyntaxErrorHasNoEffect(t *testing.T) {
	e := newEnv()
	c := NewController(e.registry, e.targets)

	changes, err := c.Run(`enable agent loops delays`)

	assert.Zero(t, changes)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.False(t, e.dir.IsTrackingEnabled())
}
