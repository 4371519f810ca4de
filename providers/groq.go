// Package providers contains Provider implementations for the agent
// core: a direct Groq client speaking the OpenAI chat-completions
// dialect, and an adapter over any LangChainGo model.
package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/scottsen/groqqy"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// Groq implements groqqy.Provider against the Groq API. Groq exposes
// an OpenAI-compatible surface, so the client is go-openai pointed at
// Groq's base URL.
type Groq struct {
	client *openai.Client
	model  string
	system string
	prices PriceTable
}

// GroqOption configures a Groq provider at construction.
type GroqOption func(*groqConfig)

type groqConfig struct {
	model      string
	system     string
	baseURL    string
	httpClient *http.Client
	prices     PriceTable
}

// WithModel selects the model. Defaults to [ModelLlama318BInstant].
func WithModel(model string) GroqOption {
	return func(c *groqConfig) { c.model = model }
}

// WithSystemInstruction prepends a system message to every request.
func WithSystemInstruction(instruction string) GroqOption {
	return func(c *groqConfig) { c.system = instruction }
}

// WithBaseURL overrides the API endpoint. Useful for tests and for
// other OpenAI-compatible backends.
func WithBaseURL(url string) GroqOption {
	return func(c *groqConfig) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client, e.g. to add a logging or
// retrying transport around provider calls.
func WithHTTPClient(client *http.Client) GroqOption {
	return func(c *groqConfig) { c.httpClient = client }
}

// WithPrices overrides [DefaultPrices] for cost computation.
func WithPrices(prices PriceTable) GroqOption {
	return func(c *groqConfig) { c.prices = prices }
}

// NewGroq creates a Groq provider with the given API key.
func NewGroq(apiKey string, opts ...GroqOption) *Groq {
	cfg := groqConfig{
		model:   ModelLlama318BInstant,
		baseURL: GroqBaseURL,
		prices:  DefaultPrices(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = cfg.baseURL
	if cfg.httpClient != nil {
		clientCfg.HTTPClient = cfg.httpClient
	}

	return &Groq{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.model,
		system: cfg.system,
		prices: cfg.prices,
	}
}

// Model returns the configured model name.
func (g *Groq) Model() string {
	return g.model
}

// Chat implements groqqy.Provider.
func (g *Groq) Chat(
	ctx context.Context,
	history []groqqy.Message,
	tools []groqqy.ToolSchema,
) (*groqqy.ChatResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: g.buildMessages(history),
	}
	if len(tools) > 0 {
		req.Tools = convertTools(tools)
		req.ToolChoice = "auto"
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, groqqy.ErrNoChoices
	}

	msg := resp.Choices[0].Message
	return &groqqy.ChatResponse{
		Text:      msg.Content,
		ToolCalls: convertToolCalls(msg.ToolCalls),
		Usage: groqqy.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
			Raw: map[string]any{
				"PromptTokens":     resp.Usage.PromptTokens,
				"CompletionTokens": resp.Usage.CompletionTokens,
				"TotalTokens":      resp.Usage.TotalTokens,
			},
		},
	}, nil
}

// CostOf implements groqqy.Provider.
func (g *Groq) CostOf(usage groqqy.Usage) float64 {
	return g.prices.Cost(g.model, usage)
}

// buildMessages converts the conversation log to API messages,
// prepending the system instruction if one is configured.
func (g *Groq) buildMessages(history []groqqy.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if g.system != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: g.system,
		})
	}
	for _, msg := range history {
		out = append(out, convertMessage(msg))
	}
	return out
}

func convertMessage(msg groqqy.Message) openai.ChatCompletionMessage {
	out := openai.ChatCompletionMessage{
		Role:    string(msg.Role),
		Content: msg.Content,
	}
	for _, tc := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, openai.ToolCall{
			ID:   tc.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      tc.Name,
				Arguments: tc.Arguments,
			},
		})
	}
	if msg.Role == groqqy.RoleTool {
		out.ToolCallID = msg.ToolCallID
	}
	return out
}

func convertTools(tools []groqqy.ToolSchema) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		tool := openai.Tool{Type: openai.ToolType(t.Type)}
		if t.Function != nil {
			tool.Function = &openai.FunctionDefinition{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  t.Function.Parameters,
			}
		}
		out = append(out, tool)
	}
	return out
}

func convertToolCalls(calls []openai.ToolCall) []groqqy.ToolCallRequest {
	if len(calls) == 0 {
		return nil
	}
	out := make([]groqqy.ToolCallRequest, 0, len(calls))
	for _, tc := range calls {
		out = append(out, groqqy.ToolCallRequest{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out
}

// Compile-time check that Groq implements groqqy.Provider.
var _ groqqy.Provider = (*Groq)(nil)
