package translator

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI completes prompts over the OpenAI-compatible chat API that
// Ollama (and most other local servers) expose under /v1. Useful when the
// native generate endpoint is not available.
type OpenAI struct {
	baseURL string
	model   string
	client  *openai.Client
}

// NewOpenAI creates a client for the OpenAI-compatible endpoint of the
// server at baseURL. Local servers ignore the API key, so a placeholder
// is sent.
func NewOpenAI(baseURL, model string) *OpenAI {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	cfg := openai.DefaultConfig("unused")
	cfg.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	return &OpenAI{
		baseURL: baseURL,
		model:   model,
		client:  openai.NewClientWithConfig(cfg),
	}
}

func (o *OpenAI) Name() string { return "openai" }

// Complete sends the prompt as a single user message and returns the
// first choice's content.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classify(err, o.baseURL)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Ping checks server reachability by listing models.
func (o *OpenAI) Ping(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return classify(err, o.baseURL)
	}
	return nil
}
