package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, status int, body map[string]any) (*OpenAIProvider, *map[string]any) {
	t.Helper()
	received := map[string]any{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &received)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return p, &received
}

func completion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
	}
}

func TestOpenAIProvider_StructuredOutput(t *testing.T) {
	p, received := newTestOpenAI(t, http.StatusOK, completion(`{"word":"apple","level":"beginner"}`, "stop"))

	resp, err := p.Generate(t.Context(), UserPrompt("be brief", "one word", wordSchema, 200))

	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"apple","level":"beginner"}`, string(resp.Content))
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 20, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-4o-mini", resp.Model)

	format, ok := (*received)["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
	msgs, ok := (*received)["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	p, _ := newTestOpenAI(t, http.StatusOK, completion(`{"word":"apple"}`, "stop"))

	_, err := p.Generate(t.Context(), UserPrompt("", "one word", wordSchema, 200))

	var invalid *InvalidResponseError
	assert.ErrorAs(t, err, &invalid)
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p, _ := newTestOpenAI(t, http.StatusOK, completion(`{"word":`, "length"))

	_, err := p.Generate(t.Context(), UserPrompt("", "one word", wordSchema, 5))

	var truncated *TruncatedError
	assert.ErrorAs(t, err, &truncated)
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	errBody := map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}}

	p, _ := newTestOpenAI(t, http.StatusTooManyRequests, errBody)
	_, err := p.Generate(t.Context(), UserPrompt("", "x", nil, 10))
	var rl *RateLimitError
	assert.ErrorAs(t, err, &rl)

	p, _ = newTestOpenAI(t, http.StatusBadGateway, errBody)
	_, err = p.Generate(t.Context(), UserPrompt("", "x", nil, 10))
	var un *UnavailableError
	assert.ErrorAs(t, err, &un)
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	assert.Error(t, err)
}
