package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/scottsen/groqqy"
	"github.com/scottsen/groqqy/schema"
)

// commandTimeout bounds a single shell invocation so a hung command
// cannot stall the agent loop indefinitely.
const commandTimeout = 30 * time.Second

// RunCommand returns a tool that executes a shell command and returns
// its combined output.
func RunCommand() groqqy.Tool {
	return groqqy.NewToolFunc(
		"run_command",
		"Execute a shell command and return output (use with caution!)",
		schema.Object(map[string]*schema.Property{
			"command": schema.String("Shell command to execute"),
		}, "command"),
		func(ctx context.Context, args map[string]any) (string, error) {
			command, _ := args["command"].(string)

			ctx, cancel := context.WithTimeout(ctx, commandTimeout)
			defer cancel()

			cmd := exec.CommandContext(ctx, "sh", "-c", command)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			err := cmd.Run()
			output := stdout.String()
			if stderr.Len() > 0 {
				output += fmt.Sprintf("\nErrors: %s", stderr.String())
			}
			if err != nil && output == "" {
				return fmt.Sprintf("Error running command: %v", err), nil
			}
			return output, nil
		},
	)
}
