package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements CompletionClient against an OpenAI-compatible
// chat-completion endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client for the given model. baseURL overrides the
// default API endpoint when non-empty (local gateways, proxies).
func NewOpenAIClient(apiKey, model, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("completion API key is empty")
	}
	if model == "" {
		return nil, fmt.Errorf("completion model is empty")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Complete sends the prompt as a single system message and returns the first
// choice's content. Failures are mapped to *ServiceError.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, p Params) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
		},
		MaxTokens:        p.MaxTokens,
		Temperature:      p.Temperature,
		FrequencyPenalty: p.FrequencyPenalty,
		PresencePenalty:  p.PresencePenalty,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &ServiceError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", &ServiceError{Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return "", &ServiceError{Message: "backend returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}
