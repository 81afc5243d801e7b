// Package llm wraps the language model vendors behind one Provider
// interface that returns schema-checked JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates content for a request. When Request.Schema is set the
// returned Content is JSON that has already been validated against it.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // end or max_tokens
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds the common single-turn request.
func UserPrompt(system, user string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: user}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}
