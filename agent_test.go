package skagent_test

import (
	"testing"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T, kinds ...skagent.EventKind) *skagent.Agent {
	t.Helper()
	dir := skagent.NewDirectory()
	return dir.RegisterAgent(skagent.CoreAddon, tt.NewRecorder().Handle, kinds...)
}

func TestAgent_AddListener_IsIdempotent(t *testing.T) {
	agent := newTestAgent(t)

	assert.True(t, agent.AddListener(skagent.KindFunctionEnd))
	assert.False(t, agent.AddListener(skagent.KindFunctionEnd))
	assert.True(t, agent.HasListener(skagent.KindFunctionEnd))
	assert.Equal(t, []skagent.EventKind{skagent.KindFunctionEnd}, agent.ListenedKinds())
}

func TestAgent_RemoveListener_IsIdempotent(t *testing.T) {
	agent := newTestAgent(t, skagent.KindDelayStart)

	assert.True(t, agent.RemoveListener(skagent.KindDelayStart))
	assert.False(t, agent.RemoveListener(skagent.KindDelayStart))
	assert.False(t, agent.HasListener(skagent.KindDelayStart))
	assert.Empty(t, agent.ListenedKinds())
}

func TestAgent_MultiKindOperations(t *testing.T) {
	type input struct {
		initial []skagent.EventKind
		kinds   []skagent.EventKind
	}

	type expected struct {
		added   bool
		removed bool
		has     bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "all new kinds",
			input: input{
				kinds: []skagent.EventKind{skagent.KindForLoopStart, skagent.KindForLoopEnd},
			},
			expected: expected{added: true, removed: false, has: false},
		},
		{
			name: "one new kind among known ones",
			input: input{
				initial: []skagent.EventKind{skagent.KindForLoopStart},
				kinds:   []skagent.EventKind{skagent.KindForLoopStart, skagent.KindForLoopEnd},
			},
			expected: expected{added: true, removed: true, has: false},
		},
		{
			name: "all kinds already present",
			input: input{
				initial: []skagent.EventKind{skagent.KindForLoopStart, skagent.KindForLoopEnd},
				kinds:   []skagent.EventKind{skagent.KindForLoopEnd, skagent.KindForLoopStart},
			},
			expected: expected{added: false, removed: true, has: true},
		},
		{
			name:     "empty argument list",
			input:    input{initial: []skagent.EventKind{skagent.KindDelayEnd}},
			expected: expected{added: false, removed: false, has: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agent := newTestAgent(t, tc.input.initial...)
			assert.Equal(t, tc.expected.has, agent.HasListeners(tc.input.kinds...), "HasListeners")

			agent = newTestAgent(t, tc.input.initial...)
			assert.Equal(t, tc.expected.added, agent.AddListeners(tc.input.kinds...), "AddListeners")
			assert.True(t, agent.HasListeners(tc.input.kinds...))

			assert.Equal(t, tc.expected.removed, agent.RemoveListeners(tc.input.kinds...), "RemoveListeners")
			for _, k := range tc.input.kinds {
				assert.False(t, agent.HasListener(k))
			}
		})
	}
}

func TestAgent_ListenedKinds_KeepsInsertionOrder(t *testing.T) {
	agent := newTestAgent(t, skagent.KindResolvedPlayer, skagent.KindFunctionStart, skagent.KindResolvedPlayer)

	agent.AddListener(skagent.KindDelayEnd)
	agent.RemoveListener(skagent.KindFunctionStart)
	agent.AddListener(skagent.KindFunctionStart)

	assert.Equal(t, []skagent.EventKind{
		skagent.KindResolvedPlayer,
		skagent.KindDelayEnd,
		skagent.KindFunctionStart,
	}, agent.ListenedKinds())
}

func TestAgent_ListenedKinds_ReturnsCopy(t *testing.T) {
	agent := newTestAgent(t, skagent.KindFunctionStart)

	kinds := agent.ListenedKinds()
	kinds[0] = skagent.KindDelayEnd

	assert.True(t, agent.HasListener(skagent.KindFunctionStart))
	assert.False(t, agent.HasListener(skagent.KindDelayEnd))
}

func TestAgent_AddListeners_PanicsOnUndeclaredKind(t *testing.T) {
	agent := newTestAgent(t)

	assert.Panics(t, func() {
		agent.AddListener(skagent.EventKind(0))
	})
}

func TestAgent_IdentityAndEquality(t *testing.T) {
	dir := skagent.NewDirectory()
	a := dir.RegisterAgent(skagent.CoreAddon, tt.NewRecorder().Handle, skagent.KindFunctionEnd)
	b := dir.RegisterAgent(skagent.CoreAddon, tt.NewRecorder().Handle, skagent.KindFunctionEnd)

	require.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, skagent.CoreAddon, a.Owner())
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}
