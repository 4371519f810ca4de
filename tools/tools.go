// Package tools provides the builtin local tools: file reading, shell
// command execution, and file/content search.
//
// Builtin tools report expected I/O failures (missing file, failed
// command) as in-band result text rather than as errors, so the model
// always sees what went wrong. Unexpected failures still surface as
// errors and are contained by the executor.
package tools

import (
	"github.com/scottsen/groqqy"
)

// DefaultRegistry returns a registry pre-populated with the builtin
// tools: read_file, run_command, search_files, search_content.
func DefaultRegistry() *groqqy.ToolRegistry {
	registry := groqqy.NewToolRegistry()
	registry.Register(ReadFile())
	registry.Register(RunCommand())
	registry.Register(SearchFiles())
	registry.Register(SearchContent())
	return registry
}
