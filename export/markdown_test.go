package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottsen/groqqy"
)

func sampleHistory() []groqqy.Message {
	return []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "read my notes"},
		{Role: groqqy.RoleAssistant, Content: "Sure.", ToolCalls: []groqqy.ToolCallRequest{{
			ID: "call_1", Name: "read_file", Arguments: `{"file_path":"notes.md"}`,
		}}},
		{Role: groqqy.RoleTool, ToolCallID: "call_1", Content: "buy milk"},
		{Role: groqqy.RoleAssistant, Content: "Your notes say: buy milk."},
	}
}

func TestMarkdown(t *testing.T) {
	doc := Markdown("Test Session", sampleHistory())

	assert.True(t, strings.HasPrefix(doc, "# Test Session\n"))
	assert.Contains(t, doc, "*Exported ")

	assert.Contains(t, doc, "## User\n\nread my notes")
	assert.Contains(t, doc, "**Tool call:** `read_file`")
	assert.Contains(t, doc, "```json\n{\"file_path\":\"notes.md\"}\n```")
	assert.Contains(t, doc, "**Tool result** (`call_1`):")
	assert.Contains(t, doc, "```\nbuy milk\n```")
	assert.Contains(t, doc, "Your notes say: buy milk.")

	// Order matters: user turn before the tool exchange, final answer last.
	userIdx := strings.Index(doc, "## User")
	callIdx := strings.Index(doc, "**Tool call:**")
	resultIdx := strings.Index(doc, "**Tool result**")
	finalIdx := strings.Index(doc, "Your notes say")
	assert.Less(t, userIdx, callIdx)
	assert.Less(t, callIdx, resultIdx)
	assert.Less(t, resultIdx, finalIdx)
}

func TestMarkdown_DefaultTitle(t *testing.T) {
	doc := Markdown("", nil)
	assert.True(t, strings.HasPrefix(doc, "# Conversation\n"))
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.md")

	require.NoError(t, WriteMarkdown(path, "Saved", sampleHistory()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Saved")
}

func TestWriteMarkdown_BadPath(t *testing.T) {
	err := WriteMarkdown("/nonexistent/dir/session.md", "Saved", nil)
	assert.Error(t, err)
}
