package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

var wordSchema = &Schema{
	Name: "test-word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":  map[string]any{"type": "string"},
			"level": map[string]any{"type": "string", "enum": []string{"beginner", "advanced"}},
		},
		"required":             []string{"word", "level"},
		"additionalProperties": false,
	},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid", raw: `{"word":"apple","level":"beginner"}`},
		{name: "missing field", raw: `{"word":"apple"}`, wantErr: true},
		{name: "bad enum", raw: `{"word":"apple","level":"expert"}`, wantErr: true},
		{name: "extra field", raw: `{"word":"apple","level":"beginner","x":1}`, wantErr: true},
		{name: "not json", raw: `apple`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(wordSchema, json.RawMessage(tt.raw))
			if tt.wantErr {
				var invalid *InvalidResponseError
				assert.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.raw, string(invalid.Content))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NilSchemaAcceptsAnything(t *testing.T) {
	assert.NoError(t, Validate(nil, json.RawMessage(`not json`)))
}

func TestMockProvider_ValidatesAgainstRequestSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"word":"x"}`)})

	_, err := mock.Generate(t.Context(), Request{Schema: wordSchema})

	var invalid *InvalidResponseError
	assert.ErrorAs(t, err, &invalid)
	last, ok := mock.LastRequest()
	assert.True(t, ok)
	assert.Equal(t, wordSchema, last.Schema)
}
