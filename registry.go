package groqqy

import (
	"github.com/scottsen/groqqy/schema"
)

// ToolSchema is the machine-readable description of one tool, sent to
// the LLM so it can decide whether and how to request it.
type ToolSchema struct {
	// Type is "function" for locally executed tools, or the platform
	// tool type (e.g. "browser_search") for tools the provider
	// resolves server-side.
	Type string

	// Function describes a locally executed tool. Nil for platform
	// tools, whose parameters are provider-defined and opaque here.
	Function *FunctionSchema
}

// FunctionSchema describes a locally executed tool's callable surface.
type FunctionSchema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolRegistry is the catalog of invocable tools, indexed by name.
//
// Registration preserves insertion order; re-registering an existing
// name replaces the tool but keeps its original position. The registry
// is single-writer and must not be mutated while an agent run is in
// progress.
type ToolRegistry struct {
	names    []string
	tools    map[string]Tool
	schemas  map[string]*schema.Schema
	platform []ToolSchema
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools:   make(map[string]Tool),
		schemas: make(map[string]*schema.Schema),
	}
}

// Register inserts or replaces a tool by name. Last write wins.
//
// The tool's parameter schema is compiled here so the executor can
// validate model-supplied arguments before invoking. A schema that
// fails to compile disables validation for that tool; the tool itself
// stays registered.
func (r *ToolRegistry) Register(tool Tool) *ToolRegistry {
	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.names = append(r.names, name)
	}
	r.tools[name] = tool

	delete(r.schemas, name)
	if raw := tool.ParameterSchema(); raw != nil {
		if compiled, err := schema.Compile(raw); err == nil && compiled != nil {
			r.schemas[name] = compiled
		}
	}

	return r
}

// RegisterFunc introspects fn and registers the resulting tool. See
// [NewToolFromFunc] for the accepted function shapes.
func (r *ToolRegistry) RegisterFunc(name, description string, fn any) error {
	tool, err := NewToolFromFunc(name, description, fn)
	if err != nil {
		return err
	}
	r.Register(tool)
	return nil
}

// RegisterPlatformTool registers a tool resolved by the remote
// provider itself (e.g. "browser_search"). Platform tools execute
// server-side, carry no local parameter schema, and never produce
// local tool calls.
func (r *ToolRegistry) RegisterPlatformTool(toolType string) *ToolRegistry {
	r.platform = append(r.platform, ToolSchema{Type: toolType})
	return r
}

// Get returns the tool registered under name. Absence is a normal,
// expected outcome; callers must handle ok == false explicitly.
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// ListAll returns all registered tools in registration order.
func (r *ToolRegistry) ListAll() []Tool {
	out := make([]Tool, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.tools[name])
	}
	return out
}

// ListNames returns all tool names in registration order.
func (r *ToolRegistry) ListNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of locally registered tools.
func (r *ToolRegistry) Len() int {
	return len(r.tools)
}

// Schemas returns one schema per tool in registration order, with any
// platform-tool registrations appended.
func (r *ToolRegistry) Schemas() []ToolSchema {
	out := make([]ToolSchema, 0, len(r.names)+len(r.platform))
	for _, name := range r.names {
		tool := r.tools[name]
		out = append(out, ToolSchema{
			Type: "function",
			Function: &FunctionSchema{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.ParameterSchema(),
			},
		})
	}
	out = append(out, r.platform...)
	return out
}

// compiledSchema returns the compiled parameter schema for name, or
// nil when the tool has none.
func (r *ToolRegistry) compiledSchema(name string) *schema.Schema {
	return r.schemas[name]
}
