package control

import (
	"testing"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/internal/tt"
	"github.com/LifeMC/skagent/trackers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Effect
	}{
		{
			name:  "bare enable",
			input: `enable agent functions`,
			expected: &Effect{
				Action: Enable,
				Names:  []string{"functions"},
				Kinds:  []trackers.Kind{trackers.Functions},
			},
		},
		{
			name:  "the and quoted list",
			input: `enable the agent "functions" and "loops"`,
			expected: &Effect{
				Action: Enable,
				Names:  []string{"functions", "loops"},
				Kinds:  []trackers.Kind{trackers.Functions, trackers.Loops},
			},
		},
		{
			name:  "disable with targets",
			input: `disable agent delays, variables for console and "ops"`,
			expected: &Effect{
				Action:  Disable,
				Names:   []string{"delays", "variables"},
				Kinds:   []trackers.Kind{trackers.Delays, trackers.Variables},
				Targets: []string{"console", "ops"},
			},
		},
		{
			name:  "comma and separator with mixed case",
			input: `ENABLE The Agent Function, Loop, and RESOLVERS`,
			expected: &Effect{
				Action: Enable,
				Names:  []string{"Function", "Loop", "RESOLVERS"},
				Kinds:  []trackers.Kind{trackers.Functions, trackers.Loops, trackers.Resolver},
			},
		},
		{
			name:  "unknown names are kept aside",
			input: `enable agent "timings", loops`,
			expected: &Effect{
				Action:  Enable,
				Names:   []string{"timings", "loops"},
				Kinds:   []trackers.Kind{trackers.Loops},
				Unknown: []string{"timings"},
			},
		},
		{
			name:  "duplicate kinds collapse",
			input: `enable agent function and functions`,
			expected: &Effect{
				Action: Enable,
				Names:  []string{"function", "functions"},
				Kinds:  []trackers.Kind{trackers.Functions},
			},
		},
		{
			name:  "quoted for is a name",
			input: `enable agent "for"`,
			expected: &Effect{
				Action:  Enable,
				Names:   []string{"for"},
				Unknown: []string{"for"},
			},
		},
		{
			name:  "escaped quote",
			input: `enable agent loops for "my ""ops"" channel"`,
			expected: &Effect{
				Action:  Enable,
				Names:   []string{"loops"},
				Kinds:   []trackers.Kind{trackers.Loops},
				Targets: []string{`my "ops" channel`},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eff, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, eff)
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: "   "},
		{name: "wrong verb", input: "toggle agent loops"},
		{name: "missing agent", input: "enable the loops"},
		{name: "missing names", input: "enable agent"},
		{name: "missing separator", input: "enable agent loops delays"},
		{name: "dangling comma", input: "enable agent loops,"},
		{name: "leading and", input: "enable agent and loops"},
		{name: "empty target list", input: "enable agent loops for"},
		{name: "double for", input: "enable agent loops for console for ops"},
		{name: "unterminated string", input: `enable agent "loops`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eff, err := Parse(tc.input)
			assert.ErrorIs(t, err, ErrSyntax)
			assert.Nil(t, eff)
		})
	}
}

func TestEffect_String(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: `enable the agent "functions" and "loops"`, expected: "enable agent functions, loops"},
		{input: `disable agent delays for console, "ops"`, expected: "disable agent delays for console, ops"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			eff, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, eff.String())
		})
	}
}

// -----------------------------------------------------------------------------
// Execute
// -----------------------------------------------------------------------------

type env struct {
	dir      *skagent.Directory
	registry *trackers.Registry
	targets  *Targets
	console  *tt.Target
	ops      *tt.Target
}

func newEnv() *env {
	dir := skagent.NewDirectory()
	console := tt.NewTarget(skagent.ConsoleName)
	ops := tt.NewTarget("ops")
	targets := NewTargets(console)
	targets.Add(ops)
	return &env{
		dir:      dir,
		registry: trackers.NewRegistry(dir, nil),
		targets:  targets,
		console:  console,
		ops:      ops,
	}
}

func (e *env) run(t *testing.T, line string) (int, error) {
	t.Helper()
	eff, err := Parse(line)
	require.NoError(t, err)
	return eff.Execute(e.registry, e.targets)
}

func TestExecute_DefaultsToConsole(t *testing.T) {
	e := newEnv()

	changes, err := e.run(t, `enable agent functions`)
	require.NoError(t, err)
	assert.Equal(t, 1, changes)
	assert.True(t, e.registry.IsActive(trackers.Functions, e.console))

	skagent.NewInstrument(e.dir, skagent.NewMockClock(0)).Function(tt.Function("f"), nil, func() {})
	assert.Equal(t, []string{
		`[Skript Tracker] The function "f" is running now...`,
		`[Skript Tracker] The function "f" took 0 ms to complete.`,
	}, e.console.Lines())
}

func TestExecute_EnableThenDisable(t *testing.T) {
	e := newEnv()

	changes, err := e.run(t, `enable agent functions and loops for console and ops`)
	require.NoError(t, err)
	assert.Equal(t, 4, changes)
	assert.Equal(t, 4, e.dir.Len())

	changes, err = e.run(t, `enable agent functions for ops`)
	require.NoError(t, err)
	assert.Zero(t, changes, "enabling an enabled pair is a no-op")

	changes, err = e.run(t, `disable agent functions and loops for console and ops`)
	require.NoError(t, err)
	assert.Equal(t, 4, changes)
	assert.False(t, e.dir.IsTrackingEnabled())

	changes, err = e.run(t, `disable agent functions`)
	require.NoError(t, err)
	assert.Zero(t, changes)
}

func TestExecute_UnknownNamesAreSkipped(t *testing.T) {
	e := newEnv()

	changes, err := e.run(t, `enable agent timings, loops for ops and nowhere`)

	assert.Equal(t, 1, changes)
	assert.ErrorIs(t, err, trackers.ErrUnknownKind)
	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.ErrorContains(t, err, "timings")
	assert.ErrorContains(t, err, "nowhere")
	assert.True(t, e.registry.IsActive(trackers.Loops, e.ops))
}

func TestExecute_ResolvesTargetsCaseInsensitively(t *testing.T) {
	e := newEnv()

	_, err := e.run(t, `enable agent resolver for CONSOLE and "Ops"`)
	require.NoError(t, err)

	assert.True(t, e.registry.IsActive(trackers.Resolver, e.console))
	assert.True(t, e.registry.IsActive(trackers.Resolver, e.ops))
}
