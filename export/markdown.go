// Package export renders conversation transcripts for humans. The
// only supported format is Markdown: one heading per turn, with tool
// calls and their results rendered inline.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/scottsen/groqqy"
)

// Markdown renders history as a Markdown document. The title becomes
// the top-level heading; a timestamp line follows it.
func Markdown(title string, history []groqqy.Message) string {
	var b strings.Builder
	if title == "" {
		title = "Conversation"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "*Exported %s*\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, msg := range history {
		switch msg.Role {
		case groqqy.RoleUser:
			b.WriteString("## User\n\n")
			b.WriteString(msg.Content)
			b.WriteString("\n\n")
		case groqqy.RoleAssistant:
			b.WriteString("## Assistant\n\n")
			if msg.Content != "" {
				b.WriteString(msg.Content)
				b.WriteString("\n\n")
			}
			for _, call := range msg.ToolCalls {
				fmt.Fprintf(&b, "**Tool call:** `%s`\n\n", call.Name)
				if call.Arguments != "" {
					fmt.Fprintf(&b, "```json\n%s\n```\n\n", call.Arguments)
				}
			}
		case groqqy.RoleTool:
			fmt.Fprintf(&b, "**Tool result** (`%s`):\n\n", msg.ToolCallID)
			fmt.Fprintf(&b, "```\n%s\n```\n\n", msg.Content)
		}
	}
	return b.String()
}

// WriteMarkdown exports history to a file at path.
func WriteMarkdown(path, title string, history []groqqy.Message) error {
	doc := Markdown(title, history)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
