package tt

import (
	"slices"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// AssertLines fails the test if actual differs from expected, reporting a
// unified diff of the two line lists.
func AssertLines(t *testing.T, expected, actual []string) bool {
	t.Helper()

	if slices.Equal(expected, actual) {
		return true
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(expected),
		B:        withNewlines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		t.Errorf("lines differ (diff failed: %v)\nexpected:\n%s\nactual:\n%s",
			err, strings.Join(expected, "\n"), strings.Join(actual, "\n"))
		return false
	}
	t.Errorf("lines differ:\n%s", diff)
	return false
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}
