package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottsen/groqqy"
)

// fakeGroqServer captures the last request and returns a canned
// chat-completions response.
type fakeGroqServer struct {
	server      *httptest.Server
	lastRequest openai.ChatCompletionRequest
	response    openai.ChatCompletionResponse
}

func newFakeGroqServer(t *testing.T, response openai.ChatCompletionResponse) *fakeGroqServer {
	t.Helper()
	f := &fakeGroqServer{response: response}
	f.server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&f.lastRequest); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(f.response)
		}))
	t.Cleanup(f.server.Close)
	return f
}

func textCompletion(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  ModelLlama318BInstant,
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: text,
			},
			FinishReason: openai.FinishReasonStop,
		}},
		Usage: openai.Usage{
			PromptTokens:     12,
			CompletionTokens: 7,
			TotalTokens:      19,
		},
	}
}

func TestGroq_ChatTextResponse(t *testing.T) {
	fake := newFakeGroqServer(t, textCompletion("Hello there."))

	provider := NewGroq("test-key",
		WithBaseURL(fake.server.URL),
		WithModel(ModelLlama318BInstant))

	resp, err := provider.Chat(context.Background(), []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "hi"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Hello there.", resp.Text)
	assert.Empty(t, resp.ToolCalls)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 7, resp.Usage.OutputTokens)
	assert.Equal(t, 19, resp.Usage.TotalTokens)

	require.Len(t, fake.lastRequest.Messages, 1)
	assert.Equal(t, "user", fake.lastRequest.Messages[0].Role)
	assert.Empty(t, fake.lastRequest.Tools)
}

func TestGroq_SystemInstructionPrepended(t *testing.T) {
	fake := newFakeGroqServer(t, textCompletion("ok"))

	provider := NewGroq("test-key",
		WithBaseURL(fake.server.URL),
		WithSystemInstruction("You are terse."))

	_, err := provider.Chat(context.Background(), []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "hi"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, fake.lastRequest.Messages, 2)
	assert.Equal(t, "system", fake.lastRequest.Messages[0].Role)
	assert.Equal(t, "You are terse.", fake.lastRequest.Messages[0].Content)
	assert.Equal(t, "user", fake.lastRequest.Messages[1].Role)
}

func TestGroq_ToolsForwardedWithAutoChoice(t *testing.T) {
	fake := newFakeGroqServer(t, textCompletion("ok"))

	provider := NewGroq("test-key", WithBaseURL(fake.server.URL))

	tools := []groqqy.ToolSchema{{
		Type: "function",
		Function: &groqqy.FunctionSchema{
			Name:        "read_file",
			Description: "Reads a file.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"file_path": map[string]any{"type": "string"},
				},
			},
		},
	}}

	_, err := provider.Chat(context.Background(), []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "read something"},
	}, tools)
	require.NoError(t, err)

	require.Len(t, fake.lastRequest.Tools, 1)
	assert.Equal(t, openai.ToolTypeFunction, fake.lastRequest.Tools[0].Type)
	assert.Equal(t, "read_file", fake.lastRequest.Tools[0].Function.Name)
	assert.Equal(t, "auto", fake.lastRequest.ToolChoice)
}

func TestGroq_ToolCallResponseParsed(t *testing.T) {
	response := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{
				Role: openai.ChatMessageRoleAssistant,
				ToolCalls: []openai.ToolCall{{
					ID:   "call_abc",
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      "read_file",
						Arguments: `{"file_path":"/tmp/x"}`,
					},
				}},
			},
			FinishReason: openai.FinishReasonToolCalls,
		}},
		Usage: openai.Usage{PromptTokens: 20, CompletionTokens: 10, TotalTokens: 30},
	}
	fake := newFakeGroqServer(t, response)

	provider := NewGroq("test-key", WithBaseURL(fake.server.URL))

	resp, err := provider.Chat(context.Background(), []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "read /tmp/x"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_abc", resp.ToolCalls[0].ID)
	assert.Equal(t, "read_file", resp.ToolCalls[0].Name)
	assert.Equal(t, `{"file_path":"/tmp/x"}`, resp.ToolCalls[0].Arguments)
}

func TestGroq_ToolExchangeHistoryConverted(t *testing.T) {
	fake := newFakeGroqServer(t, textCompletion("done"))

	provider := NewGroq("test-key", WithBaseURL(fake.server.URL))

	history := []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "read /tmp/x"},
		{Role: groqqy.RoleAssistant, ToolCalls: []groqqy.ToolCallRequest{{
			ID: "call_abc", Name: "read_file", Arguments: `{"file_path":"/tmp/x"}`,
		}}},
		{Role: groqqy.RoleTool, ToolCallID: "call_abc", Content: "file contents"},
	}

	_, err := provider.Chat(context.Background(), history, nil)
	require.NoError(t, err)

	require.Len(t, fake.lastRequest.Messages, 3)

	assistant := fake.lastRequest.Messages[1]
	assert.Equal(t, "assistant", assistant.Role)
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, "call_abc", assistant.ToolCalls[0].ID)

	toolMsg := fake.lastRequest.Messages[2]
	assert.Equal(t, "tool", toolMsg.Role)
	assert.Equal(t, "call_abc", toolMsg.ToolCallID)
	assert.Equal(t, "file contents", toolMsg.Content)
}

func TestGroq_EmptyChoicesIsError(t *testing.T) {
	fake := newFakeGroqServer(t, openai.ChatCompletionResponse{
		Usage: openai.Usage{PromptTokens: 5},
	})

	provider := NewGroq("test-key", WithBaseURL(fake.server.URL))

	_, err := provider.Chat(context.Background(), []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "hi"},
	}, nil)
	assert.ErrorIs(t, err, groqqy.ErrNoChoices)
}

func TestGroq_HTTPErrorWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"rate limit"}}`,
				http.StatusTooManyRequests)
		}))
	t.Cleanup(server.Close)

	provider := NewGroq("test-key", WithBaseURL(server.URL))

	_, err := provider.Chat(context.Background(), []groqqy.Message{
		{Role: groqqy.RoleUser, Content: "hi"},
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groq chat completion")
}

func TestGroq_CostOf(t *testing.T) {
	provider := NewGroq("test-key", WithModel(ModelLlama318BInstant))

	cost := provider.CostOf(groqqy.Usage{
		InputTokens:  1_000_000,
		OutputTokens: 1_000_000,
	})
	assert.InDelta(t, 0.13, cost, 1e-12)
}

func TestGroq_WithPricesOverride(t *testing.T) {
	provider := NewGroq("test-key",
		WithModel("custom"),
		WithPrices(PriceTable{"custom": {Input: 10, Output: 20}}))

	cost := provider.CostOf(groqqy.Usage{InputTokens: 100_000, OutputTokens: 50_000})
	assert.InDelta(t, 1.0+1.0, cost, 1e-12)
}
