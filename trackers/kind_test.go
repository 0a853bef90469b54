package trackers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"functions", Functions},
		{"function", Functions},
		{"FUNCTIONS", Functions},
		{"Loop", Loops},
		{"loops", Loops},
		{"resolver", Resolver},
		{"resolvers", Resolver},
		{"delay", Delays},
		{"Delays", Delays},
		{"variable", Variables},
		{" variables ", Variables},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			kind, err := ParseKind(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	for _, input := range []string{"", "s", "timings", "functionss"} {
		_, err := ParseKind(input)
		assert.True(t, errors.Is(err, ErrUnknownKind), "input %q", input)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "functions", Functions.String())
	assert.Equal(t, "variables", Variables.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Len(t, AllKinds(), 5)
}
