package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_BuildsRawSchema(t *testing.T) {
	raw := Object(map[string]*Property{
		"query": String("Search query"),
		"limit": Integer("Max results").Default(20),
		"exact": Boolean("Exact matching"),
		"score": Number("Minimum score"),
		"mode":  String("Search mode").Enum("files", "content"),
	}, "query")

	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, []string{"query"}, raw["required"])

	props := raw["properties"].(map[string]any)
	require.Len(t, props, 5)

	query := props["query"].(map[string]any)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "Search query", query["description"])

	limit := props["limit"].(map[string]any)
	assert.Equal(t, "integer", limit["type"])
	assert.Equal(t, 20, limit["default"])

	mode := props["mode"].(map[string]any)
	assert.Equal(t, []any{"files", "content"}, mode["enum"])
}

func TestCompile_Validate(t *testing.T) {
	type input struct {
		data map[string]any
	}

	type expected struct {
		valid bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "valid arguments",
			input: input{data: map[string]any{
				"query": "hello",
				"limit": float64(5),
			}},
			expected: expected{valid: true},
		},
		{
			name:     "missing required property",
			input:    input{data: map[string]any{"limit": float64(5)}},
			expected: expected{valid: false},
		},
		{
			name: "wrong property type",
			input: input{data: map[string]any{
				"query": float64(42),
			}},
			expected: expected{valid: false},
		},
		{
			name: "optional property omitted",
			input: input{data: map[string]any{
				"query": "hello",
			}},
			expected: expected{valid: true},
		},
	}

	raw := Object(map[string]*Property{
		"query": String("Search query"),
		"limit": Integer("Max results"),
	}, "query")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(raw)
			require.NoError(t, err)
			require.NotNil(t, s)

			err = s.Validate(tt.input.data)
			if tt.expected.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)

				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
			}
		})
	}
}

func TestCompile_NilSchemaMeansNoValidation(t *testing.T) {
	s, err := Compile(nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	// A nil Schema accepts anything.
	assert.NoError(t, s.Validate(map[string]any{"anything": "goes"}))
	assert.Nil(t, s.Raw())
}

func TestCompile_RejectsMalformedSchema(t *testing.T) {
	_, err := Compile(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bad": map[string]any{"type": 12345},
		},
	})
	assert.Error(t, err)
}

func TestMustCompile_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"bad": map[string]any{"type": 12345},
			},
		})
	})
}

func TestSchema_RawRoundTrip(t *testing.T) {
	raw := Object(map[string]*Property{
		"name": String("A name"),
	}, "name")

	s, err := Compile(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, s.Raw())
}
