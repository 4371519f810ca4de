// Package tt provides shared test helpers: a scriptable Provider mock
// and transcript assertion utilities.
package tt

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scottsen/groqqy"
)

// -----------------------------------------------------------------------------
// MockProvider - implements groqqy.Provider
// -----------------------------------------------------------------------------

// MockProvider is a configurable mock that implements groqqy.Provider.
// Responses and errors are consumed in the order they were queued; a
// call past the end of the script returns a plain "done" response.
type MockProvider struct {
	responses []*groqqy.ChatResponse
	errors    []error
	callCount int
	costPer   float64

	// CapturedHistories stores the history passed to each Chat call.
	CapturedHistories [][]groqqy.Message

	// CapturedTools stores the tool schemas passed to each Chat call.
	CapturedTools [][]groqqy.ToolSchema
}

// NewMockProvider creates an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// WithCostPerCall sets a fixed cost returned by CostOf for every
// usage, regardless of token counts.
func (m *MockProvider) WithCostPerCall(cost float64) *MockProvider {
	m.costPer = cost
	return m
}

// queueResponse appends resp at the next script position. Padding
// keeps the responses and errors slices aligned so each queued entry,
// response or error, is consumed by exactly one call in queue order.
func (m *MockProvider) queueResponse(resp *groqqy.ChatResponse) {
	for len(m.responses) < len(m.errors) {
		m.responses = append(m.responses, nil)
	}
	m.responses = append(m.responses, resp)
}

// AddResponse queues a text-only response with the given token counts.
func (m *MockProvider) AddResponse(text string, inputTokens, outputTokens int) *MockProvider {
	m.queueResponse(&groqqy.ChatResponse{
		Text: text,
		Usage: groqqy.Usage{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			TotalTokens:  inputTokens + outputTokens,
		},
	})
	return m
}

// AddToolCallResponse queues a response requesting a single tool call.
// The tool call id is minted automatically and returned so tests can
// match it against tool-role messages.
func (m *MockProvider) AddToolCallResponse(name, arguments string) (id string) {
	id = "call_" + uuid.NewString()
	m.queueResponse(&groqqy.ChatResponse{
		ToolCalls: []groqqy.ToolCallRequest{{
			ID:        id,
			Name:      name,
			Arguments: arguments,
		}},
		Usage: groqqy.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	})
	return id
}

// AddRawResponse queues a fully-specified response. Use this for
// multi-tool-call turns or unusual usage payloads.
func (m *MockProvider) AddRawResponse(resp *groqqy.ChatResponse) *MockProvider {
	m.queueResponse(resp)
	return m
}

// AddError queues an error at the next script position, after any
// already-queued responses.
func (m *MockProvider) AddError(err error) *MockProvider {
	for len(m.errors) < len(m.responses) {
		m.errors = append(m.errors, nil)
	}
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times Chat has been called.
func (m *MockProvider) CallCount() int {
	return m.callCount
}

// Chat implements groqqy.Provider.
func (m *MockProvider) Chat(
	ctx context.Context,
	history []groqqy.Message,
	tools []groqqy.ToolSchema,
) (*groqqy.ChatResponse, error) {
	idx := m.callCount
	m.callCount++

	captured := make([]groqqy.Message, len(history))
	copy(captured, history)
	m.CapturedHistories = append(m.CapturedHistories, captured)
	m.CapturedTools = append(m.CapturedTools, tools)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}
	if idx < len(m.responses) && m.responses[idx] != nil {
		return m.responses[idx], nil
	}
	return &groqqy.ChatResponse{
		Text:  "done",
		Usage: groqqy.Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}, nil
}

// CostOf implements groqqy.Provider. With no fixed per-call cost set,
// a simple per-token rate is used so totals stay deterministic.
func (m *MockProvider) CostOf(usage groqqy.Usage) float64 {
	if m.costPer != 0 {
		return m.costPer
	}
	return float64(usage.InputTokens)*0.000001 +
		float64(usage.OutputTokens)*0.000002
}

var _ groqqy.Provider = (*MockProvider)(nil)

// -----------------------------------------------------------------------------
// Tool helpers
// -----------------------------------------------------------------------------

// EchoTool returns a registry tool named name that echoes its "text"
// argument back, prefixed with the tool name.
func EchoTool(name string) groqqy.Tool {
	return groqqy.NewToolFunc(
		name,
		"Echoes the text argument back.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
			"required": []any{"text"},
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			text, _ := args["text"].(string)
			return fmt.Sprintf("%s: %s", name, text), nil
		},
	)
}

// FailingTool returns a registry tool named name whose invocation
// always fails with the given error.
func FailingTool(name string, err error) groqqy.Tool {
	return groqqy.NewToolFunc(
		name,
		"Always fails.",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(ctx context.Context, args map[string]any) (string, error) {
			return "", err
		},
	)
}
