package providers

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/scottsen/groqqy"
)

// LCG adapts any LangChainGo llms.Model into a groqqy.Provider,
// opening the agent core to every backend LangChainGo supports
// (OpenAI, Anthropic, Google, Ollama, Bedrock, ...). Token usage is
// normalized across providers from the raw GenerationInfo map.
//
// Example:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	provider := providers.NewLCG(llm).
//	    WithModelName("gpt-4o-mini").
//	    WithPrices(myPrices)
type LCG struct {
	model     llms.Model
	modelName string
	system    string
	prices    PriceTable
	options   []llms.CallOption
}

// NewLCG wraps the given LangChainGo model.
func NewLCG(model llms.Model) *LCG {
	return &LCG{model: model, prices: PriceTable{}}
}

// WithModelName sets the model name used for price lookup. Returns
// the provider for chaining.
func (m *LCG) WithModelName(name string) *LCG {
	m.modelName = name
	return m
}

// WithSystemInstruction prepends a system message to every request.
func (m *LCG) WithSystemInstruction(instruction string) *LCG {
	m.system = instruction
	return m
}

// WithPrices sets the price table used by CostOf. Without one every
// call costs zero.
func (m *LCG) WithPrices(prices PriceTable) *LCG {
	m.prices = prices
	return m
}

// WithCallOptions appends LangChainGo call options (temperature, max
// tokens, ...) applied to every request.
func (m *LCG) WithCallOptions(options ...llms.CallOption) *LCG {
	m.options = append(m.options, options...)
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCG) Unwrap() llms.Model {
	return m.model
}

// Chat implements groqqy.Provider.
func (m *LCG) Chat(
	ctx context.Context,
	history []groqqy.Message,
	tools []groqqy.ToolSchema,
) (*groqqy.ChatResponse, error) {
	messages := m.buildMessages(history)

	opts := make([]llms.CallOption, 0, len(m.options)+1)
	opts = append(opts, m.options...)
	if len(tools) > 0 {
		opts = append(opts, llms.WithTools(convertLCGTools(tools)))
	}

	resp, err := m.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("langchaingo generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, groqqy.ErrNoChoices
	}

	choice := resp.Choices[0]
	out := &groqqy.ChatResponse{Text: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		out.ToolCalls = append(out.ToolCalls, groqqy.ToolCallRequest{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}
	if info := choice.GenerationInfo; info != nil {
		out.Usage = groqqy.Usage{
			InputTokens:  extractInputTokens(info),
			OutputTokens: extractOutputTokens(info),
			Raw:          info,
		}
		out.Usage.TotalTokens = extractTotalTokens(
			info, out.Usage.InputTokens, out.Usage.OutputTokens)
	}
	return out, nil
}

// CostOf implements groqqy.Provider.
func (m *LCG) CostOf(usage groqqy.Usage) float64 {
	return m.prices.Cost(m.modelName, usage)
}

// buildMessages converts the conversation log into LangChainGo message
// contents, prepending the system instruction if configured.
func (m *LCG) buildMessages(history []groqqy.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(history)+1)
	if m.system != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, m.system))
	}
	for _, msg := range history {
		out = append(out, convertLCGMessage(msg))
	}
	return out
}

func convertLCGMessage(msg groqqy.Message) llms.MessageContent {
	switch msg.Role {
	case groqqy.RoleTool:
		return llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{llms.ToolCallResponse{
				ToolCallID: msg.ToolCallID,
				Content:    msg.Content,
			}},
		}
	case groqqy.RoleAssistant:
		content := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if msg.Content != "" {
			content.Parts = append(content.Parts, llms.TextContent{Text: msg.Content})
		}
		for _, tc := range msg.ToolCalls {
			content.Parts = append(content.Parts, llms.ToolCall{
				ID:   tc.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		return content
	default:
		return llms.TextParts(llms.ChatMessageTypeHuman, msg.Content)
	}
}

func convertLCGTools(tools []groqqy.ToolSchema) []llms.Tool {
	out := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		tool := llms.Tool{Type: t.Type}
		if t.Function != nil {
			tool.Function = &llms.FunctionDefinition{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  t.Function.Parameters,
			}
		}
		out = append(out, tool)
	}
	return out
}

// extractInputTokens reads the input/prompt token count from a raw
// GenerationInfo map, trying the key names used by each backend.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Google (compat)
	if v := intFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := intFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	return intFromMap(info, "input_tokens")
}

// extractOutputTokens reads the output/completion token count.
func extractOutputTokens(info map[string]any) int {
	if v := intFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	if v := intFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	return intFromMap(info, "output_tokens")
}

// extractTotalTokens reads the reported total, or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	if v := intFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	if v := intFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	return input + output
}

// intFromMap extracts an int from a map, coercing the numeric types
// different backends use.
func intFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCG implements groqqy.Provider.
var _ groqqy.Provider = (*LCG)(nil)
