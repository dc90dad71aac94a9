package ai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompleter is the subset of the go-openai client used here; it keeps
// the provider testable without the network.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider speaks the chat-completions protocol. It works against any
// OpenAI-compatible endpoint, including the Gemini compatibility endpoint.
type OpenAIProvider struct {
	Model  string
	client chatCompleter
}

func NewOpenAIProvider(baseURL, apiKey, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{
		Model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, transcript []Message, message string) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(transcript)+1)
	for _, m := range transcript {
		role := m.Role
		if role == RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.Model,
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
