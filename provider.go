package groqqy

import "context"

// Usage carries cost-relevant metadata from one model call, with token
// counts normalized across backends. Raw preserves the original
// provider-specific usage map for fields not covered by the
// normalized ones.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Raw          map[string]any
}

// ChatResponse is the provider's answer to one chat call.
type ChatResponse struct {
	// Text is the generated text. May be empty, including on final
	// responses; an empty answer is a valid terminal state.
	Text string

	// ToolCalls holds the tool invocations the model requests, in the
	// order the model returned them. Empty when the model considers
	// the conversation answered.
	ToolCalls []ToolCallRequest

	// Usage is the call's normalized usage metadata.
	Usage Usage
}

// Provider is the abstraction over a remote LLM backend with
// tool-calling support. Any backend exposing these two operations can
// power an [Agent].
//
// Chat sends the full ordered message history plus the current tool
// schema list and returns the model's response. A Chat error is
// treated as fatal by the agent loop: it propagates out of Run
// without retry. Retry policy, if desired, belongs in a wrapper around the
// provider, outside the core.
type Provider interface {
	Chat(ctx context.Context, history []Message, tools []ToolSchema) (*ChatResponse, error)

	// CostOf converts raw usage metadata into a monetary amount
	// understood by [CostTracker].
	CostOf(usage Usage) float64
}
