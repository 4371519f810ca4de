package groqqy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ToolOutcome is the discriminated result of resolving and invoking a
// single tool call. Exactly one of Text or Err is meaningful. The
// outcome is serialized to plain text only at the conversation
// boundary, via [ToolOutcome.Render], preserving the "the LLM always
// sees text" contract while keeping failures typed internally.
type ToolOutcome struct {
	// ToolName is the requested tool, whether or not it exists.
	ToolName string

	// Text is the tool's output when the call succeeded.
	Text string

	// Err classifies the failure: [ErrToolNotFound], [ErrInvalidArgs],
	// or whatever the tool itself returned.
	Err error
}

// Render serializes the outcome to the text appended to the
// conversation for the model to read.
func (o ToolOutcome) Render() string {
	switch {
	case o.Err == nil:
		return o.Text
	case errors.Is(o.Err, ErrToolNotFound):
		return fmt.Sprintf("Error: Tool '%s' not found", o.ToolName)
	case errors.Is(o.Err, ErrInvalidArgs):
		return fmt.Sprintf("Error parsing arguments for %s: %v", o.ToolName, o.Err)
	default:
		return fmt.Sprintf("Error executing %s: %v", o.ToolName, o.Err)
	}
}

// ToolResult pairs a tool-call id with the rendered text fed back to
// the model.
type ToolResult struct {
	ID   string
	Text string
}

// ToolExecutor resolves tool call requests against a [ToolRegistry]
// and invokes them. Every failure mode (unknown tool, malformed
// argument JSON, schema violation, tool error) is absorbed into the
// result text; no error ever escapes Execute or ExecuteAll. The model
// sees the failure on the next iteration and can adapt.
type ToolExecutor struct {
	registry *ToolRegistry
	log      *zap.Logger
}

// NewToolExecutor creates an executor over the given registry. Pass a
// nil logger to disable logging.
func NewToolExecutor(registry *ToolRegistry, log *zap.Logger) *ToolExecutor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ToolExecutor{registry: registry, log: log}
}

// Execute resolves and invokes one tool call, always producing text.
func (e *ToolExecutor) Execute(ctx context.Context, call ToolCallRequest) string {
	return e.run(ctx, call).Render()
}

// ExecuteAll executes the given calls sequentially, preserving input
// order. Order matters: later calls in one batch may be used by the
// model to disambiguate error attribution, and results are matched
// back by id.
func (e *ToolExecutor) ExecuteAll(ctx context.Context, calls []ToolCallRequest) []ToolResult {
	results := make([]ToolResult, 0, len(calls))
	for _, call := range calls {
		results = append(results, ToolResult{
			ID:   call.ID,
			Text: e.run(ctx, call).Render(),
		})
	}
	return results
}

// run performs lookup, argument parsing, validation and invocation
// for a single call, producing a typed outcome.
func (e *ToolExecutor) run(ctx context.Context, call ToolCallRequest) ToolOutcome {
	tool, ok := e.registry.Get(call.Name)
	if !ok {
		e.log.Error("tool not found", zap.String("tool", call.Name))
		return ToolOutcome{
			ToolName: call.Name,
			Err:      fmt.Errorf("%w: %s", ErrToolNotFound, call.Name),
		}
	}

	args, err := parseArguments(call.Arguments)
	if err != nil {
		e.log.Error("argument parsing failed",
			zap.String("tool", call.Name),
			zap.Error(err))
		return ToolOutcome{
			ToolName: call.Name,
			Err:      fmt.Errorf("%w: %v", ErrInvalidArgs, err),
		}
	}

	if compiled := e.registry.compiledSchema(call.Name); compiled != nil {
		if err := compiled.Validate(args); err != nil {
			e.log.Error("argument validation failed",
				zap.String("tool", call.Name),
				zap.Error(err))
			return ToolOutcome{ToolName: call.Name, Err: err}
		}
	}

	e.log.Debug("tool execution started",
		zap.String("tool", call.Name),
		zap.Any("args", args))

	start := time.Now()
	text, err := tool.Invoke(ctx, args)
	duration := time.Since(start)

	if err != nil {
		e.log.Error("tool execution failed",
			zap.String("tool", call.Name),
			zap.Duration("duration", duration),
			zap.Error(err))
		return ToolOutcome{ToolName: call.Name, Err: err}
	}

	e.log.Info("tool execution succeeded",
		zap.String("tool", call.Name),
		zap.Duration("duration", duration),
		zap.Int("result_length", len(text)))

	return ToolOutcome{ToolName: call.Name, Text: text}
}

// parseArguments decodes the model's serialized argument JSON. An
// empty string is treated as an empty argument map; some models emit
// no arguments at all for zero-parameter tools.
func parseArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	return args, nil
}
