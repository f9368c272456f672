package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider talks to the OpenAI chat completions API or any
// compatible endpoint, OpenRouter included.
type OpenAIProvider struct {
	client   *openai.Client
	model    string
	provider string
}

// NewOpenAIProvider creates a provider for cfg. The openrouter provider
// defaults BaseURL to the OpenRouter endpoint.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cfg.Provider)
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		oc.BaseURL = cfg.BaseURL
	case cfg.Provider == ProviderOpenRouter:
		oc.BaseURL = openRouterBaseURL
	}
	return &OpenAIProvider{
		client:   openai.NewClientWithConfig(oc),
		model:    cfg.ResolvedModel(),
		provider: cfg.Provider,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            openAIMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, mapOpenAIError(p.provider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, invalidResponse(nil, "no choices in OpenAI response")
	}

	choice := resp.Choices[0]
	content := json.RawMessage(choice.Message.Content)
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, truncated(p.provider, content)
	}
	if err := ValidateJSON(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: "end",
	}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func openAIMessages(req Request) []openai.ChatCompletionMessage {
	var out []openai.ChatCompletionMessage
	if req.System != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func mapOpenAIError(provider string, err error) error {
	var status int
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
	}
	return apiError(provider, status, err)
}
