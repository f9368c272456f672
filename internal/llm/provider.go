package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content is JSON already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema // nil for free text
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// Schema is the JSON Schema a response must satisfy.
type Schema struct {
	Name        string // kebab-case, e.g. "task-hint"
	Description string
	Definition  map[string]any
}

// Response is the model output for one request.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage counts the tokens spent on one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
