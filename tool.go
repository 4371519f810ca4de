package groqqy

import (
	"context"
)

// Tool is a single callable capability an agent may invoke.
//
// Responsibility design:
//   - Tool: accept named arguments, execute logic, return text
//   - ToolRegistry: catalog tools and build the schemas sent to the LLM
//   - ToolExecutor: resolve requests, invoke tools, contain failures
//
// Tools should rely only on their explicit arguments, never on
// conversation state. A tool may return an error; the executor converts
// it into an error-text result for the model, so an error from Invoke
// never interrupts the agent loop.
type Tool interface {
	// Name returns the tool's identifier used in tool calls.
	Name() string

	// Description returns a human-readable description for the LLM.
	Description() string

	// ParameterSchema returns the JSON Schema for the tool's
	// parameters. Returns nil if the tool takes no parameters.
	ParameterSchema() map[string]any

	// Invoke executes the tool with the given named arguments and
	// returns its output as text.
	Invoke(ctx context.Context, args map[string]any) (string, error)
}

// ToolFunc is a convenience type for creating tools from functions.
type ToolFunc struct {
	name        string
	description string
	schema      map[string]any
	fn          func(ctx context.Context, args map[string]any) (string, error)
}

// NewToolFunc creates a Tool backed by the given function.
func NewToolFunc(
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Description returns a human-readable description for the LLM.
func (t *ToolFunc) Description() string {
	return t.description
}

// ParameterSchema returns the JSON Schema for the tool's parameters.
func (t *ToolFunc) ParameterSchema() map[string]any {
	return t.schema
}

// Invoke executes the tool function with the given arguments.
func (t *ToolFunc) Invoke(ctx context.Context, args map[string]any) (string, error) {
	return t.fn(ctx, args)
}

// Compile-time check that ToolFunc implements Tool.
var _ Tool = (*ToolFunc)(nil)
