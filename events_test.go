package skagent_test

import (
	"testing"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/internal/tt"
	"github.com/stretchr/testify/assert"
)

func TestEventKinds_Names(t *testing.T) {
	tests := []struct {
		kind     skagent.EventKind
		event    skagent.Event
		expected string
	}{
		{skagent.KindFunctionStart, &skagent.FunctionStartEvent{}, skagent.EventNameFunctionStart},
		{skagent.KindFunctionEnd, &skagent.FunctionEndEvent{}, skagent.EventNameFunctionEnd},
		{skagent.KindForLoopStart, &skagent.ForLoopStartEvent{}, skagent.EventNameForLoopStart},
		{skagent.KindForLoopEnd, &skagent.ForLoopEndEvent{}, skagent.EventNameForLoopEnd},
		{skagent.KindDelayStart, &skagent.DelayStartEvent{}, skagent.EventNameDelayStart},
		{skagent.KindDelayEnd, &skagent.DelayEndEvent{}, skagent.EventNameDelayEnd},
		{skagent.KindVariableChangeEnd, &skagent.VariableChangeEndEvent{}, skagent.EventNameVariableChange},
		{skagent.KindUnresolvedPlayer, &skagent.UnresolvedPlayerEvent{}, skagent.EventNameUnresolvedPlayer},
		{skagent.KindResolvedPlayer, &skagent.ResolvedPlayerEvent{}, skagent.EventNameResolvedPlayer},
	}

	assert.Len(t, skagent.AllEventKinds(), len(tests))
	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.event.Kind())
			assert.Equal(t, tc.expected, tc.kind.String())

			parsed, err := skagent.ParseEventKind(tc.expected)
			assert.NoError(t, err)
			assert.Equal(t, tc.kind, parsed)
		})
	}
}

func TestParseEventKind_Unknown(t *testing.T) {
	_, err := skagent.ParseEventKind("skript:teleport:start")
	assert.Error(t, err)
	assert.Equal(t, "EventKind(0)", skagent.EventKind(0).String())
	assert.False(t, skagent.EventKind(42).Valid())
}

func TestEventsEqual_IsStructural(t *testing.T) {
	fn := tt.Function("f")

	assert.True(t, skagent.EventsEqual(
		&skagent.FunctionEndEvent{Function: fn, Arguments: [][]any{{1, "a"}}, StartTime: 1, EndTime: 2},
		&skagent.FunctionEndEvent{Function: fn, Arguments: [][]any{{1, "a"}}, StartTime: 1, EndTime: 2},
	))
	assert.False(t, skagent.EventsEqual(
		&skagent.FunctionEndEvent{Function: fn, Arguments: [][]any{{1}}},
		&skagent.FunctionEndEvent{Function: fn, Arguments: [][]any{{2}}},
	))
	assert.False(t, skagent.EventsEqual(
		&skagent.VariableChangeEndEvent{Variable: tt.Variable("x"), NewValue: nil},
		&skagent.VariableChangeEndEvent{Variable: tt.Variable("x"), NewValue: []any{}},
	))
	assert.False(t, skagent.EventsEqual(&skagent.DelayStartEvent{}, &skagent.DelayEndEvent{}))
	assert.True(t, skagent.EventsEqual(nil, nil))
	assert.False(t, skagent.EventsEqual(&skagent.DelayStartEvent{}, nil))
}
