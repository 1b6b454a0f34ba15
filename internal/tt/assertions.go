// Package tt holds shared test helpers.
package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// AssertTextEqual fails the test with a unified diff when the two multi-line
// strings differ. Much easier to read than testify's one-line mismatch dump
// for rendered prompts and exports.
func AssertTextEqual(t *testing.T, expected, actual string) {
	t.Helper()

	if expected == actual {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("failed to diff: %v", err)
	}

	t.Errorf("text mismatch:\n%s", diff)
}
