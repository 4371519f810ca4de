package groqqy

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToolFromFunc_SchemaGeneration(t *testing.T) {
	type searchArgs struct {
		Query      string  `json:"query" desc:"Text to search for"`
		Limit      int     `json:"limit" default:"20"`
		Threshold  float64 `json:"threshold,omitempty"`
		CaseExact  bool    `json:"case_exact" default:"false"`
		unexported string
	}
	_ = searchArgs{unexported: ""}

	tool, err := NewToolFromFunc("search", "Searches things.",
		func(ctx context.Context, args searchArgs) (string, error) {
			return "", nil
		})
	require.NoError(t, err)

	assert.Equal(t, "search", tool.Name())
	assert.Equal(t, "Searches things.", tool.Description())

	schema := tool.ParameterSchema()
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	require.Len(t, props, 4)

	query := props["query"].(map[string]any)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "Text to search for", query["description"])

	limit := props["limit"].(map[string]any)
	assert.Equal(t, "integer", limit["type"])
	assert.Equal(t, 20, limit["default"])

	threshold := props["threshold"].(map[string]any)
	assert.Equal(t, "number", threshold["type"])

	caseExact := props["case_exact"].(map[string]any)
	assert.Equal(t, "boolean", caseExact["type"])
	assert.Equal(t, false, caseExact["default"])

	// Only query is required: limit and case_exact carry defaults,
	// threshold is omitempty.
	assert.Equal(t, []string{"query"}, schema["required"])
}

func TestNewToolFromFunc_InvokeRoundTrip(t *testing.T) {
	type addArgs struct {
		A int `json:"a"`
		B int `json:"b"`
	}

	tool, err := NewToolFromFunc("add", "Adds two integers.",
		func(ctx context.Context, args addArgs) (string, error) {
			return strconv.Itoa(args.A + args.B), nil
		})
	require.NoError(t, err)

	result, err := tool.Invoke(context.Background(),
		map[string]any{"a": float64(2), "b": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, "5", result)
}

func TestNewToolFromFunc_InvokePropagatesError(t *testing.T) {
	type noArgs struct{}
	boom := errors.New("boom")

	tool, err := NewToolFromFunc("fails", "Always fails.",
		func(ctx context.Context, args noArgs) (string, error) {
			return "", boom
		})
	require.NoError(t, err)

	_, err = tool.Invoke(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, boom)
}

func TestNewToolFromFunc_UntaggedFieldNameLowercased(t *testing.T) {
	type args struct {
		Path string
	}

	tool, err := NewToolFromFunc("read", "Reads a path.",
		func(ctx context.Context, a args) (string, error) {
			return a.Path, nil
		})
	require.NoError(t, err)

	props := tool.ParameterSchema()["properties"].(map[string]any)
	_, ok := props["path"]
	assert.True(t, ok)
}

func TestNewToolFromFunc_RejectsBadShapes(t *testing.T) {
	type input struct {
		fn any
	}

	tests := []struct {
		name  string
		input input
	}{
		{
			name:  "not a function",
			input: input{fn: 42},
		},
		{
			name:  "missing context parameter",
			input: input{fn: func(args struct{}) (string, error) { return "", nil }},
		},
		{
			name: "wrong return types",
			input: input{fn: func(ctx context.Context, args struct{}) (int, error) {
				return 0, nil
			}},
		},
		{
			name: "non-struct input",
			input: input{fn: func(ctx context.Context, args string) (string, error) {
				return "", nil
			}},
		},
		{
			name: "unsupported field type",
			input: input{fn: func(ctx context.Context, args struct {
				Items []string `json:"items"`
			}) (string, error) {
				return "", nil
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewToolFromFunc("bad", "Bad tool.", tt.input.fn)
			assert.Error(t, err)
		})
	}
}
