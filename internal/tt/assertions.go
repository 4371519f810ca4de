package tt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"

	"github.com/scottsen/groqqy"
)

// Transcript renders a history as one line per message, in a stable
// textual form suitable for diffing.
func Transcript(history []groqqy.Message) []string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		switch {
		case len(msg.ToolCalls) > 0:
			names := make([]string, len(msg.ToolCalls))
			for i, call := range msg.ToolCalls {
				names[i] = call.Name
			}
			lines = append(lines, fmt.Sprintf(
				"%s tool_calls=[%s] %q",
				msg.Role, strings.Join(names, ","), msg.Content))
		case msg.Role == groqqy.RoleTool:
			lines = append(lines, fmt.Sprintf(
				"%s %q", msg.Role, msg.Content))
		default:
			lines = append(lines, fmt.Sprintf(
				"%s %q", msg.Role, msg.Content))
		}
	}
	return lines
}

// AssertTranscript compares the rendered history against expected
// lines and fails with a unified diff on mismatch.
func AssertTranscript(t *testing.T, expected []string, history []groqqy.Message) {
	t.Helper()
	actual := Transcript(history)
	if assert.ObjectsAreEqual(expected, actual) {
		return
	}
	t.Errorf("transcript mismatch:\n%s", transcriptDiff(expected, actual))
}

// transcriptDiff renders a unified diff between two transcripts. The
// lines are newline-terminated before diffing so each transcript line
// stays on its own output line.
func transcriptDiff(expected, actual []string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(expected, "\n")),
		B:        difflib.SplitLines(strings.Join(actual, "\n")),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("(diff failed: %v)\nexpected: %v\nactual: %v",
			err, expected, actual)
	}
	return diff
}

// AssertRoles checks only the role sequence of a history.
func AssertRoles(t *testing.T, expected []groqqy.Role, history []groqqy.Message) {
	t.Helper()
	actual := make([]groqqy.Role, len(history))
	for i, msg := range history {
		actual[i] = msg.Role
	}
	assert.Equal(t, expected, actual)
}
