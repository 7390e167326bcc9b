// README: OpenAI-compatible Generator built on the eino chat model component.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	aclopenai "github.com/cloudwego/eino-ext/libs/acl/openai"
	"github.com/cloudwego/eino/schema"
)

const (
	ProviderOpenAI     = "openai"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIProvider implements Generator against any OpenAI-compatible endpoint.
type OpenAIProvider struct {
	model *openai.ChatModel
}

// NewOpenAIProvider builds a chat model that is asked for a JSON object answer.
// An empty baseURL targets api.openai.com.
func NewOpenAIProvider(ctx context.Context, apiKey, baseURL, modelName string, temperature float32) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       modelName,
		Temperature: &temperature,
		ResponseFormat: &aclopenai.ChatCompletionResponseFormat{
			Type: aclopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI chat model: %w", err)
	}
	return &OpenAIProvider{model: cm}, nil
}

// Generate sends prompt as a single user message.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := p.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", generationError(ProviderOpenAI, fmt.Errorf("chat completion: %w", err))
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", generationError(ProviderOpenAI, ErrEmptyResponse)
	}
	return msg.Content, nil
}

// Close satisfies Provider; the chat model holds no resources.
func (p *OpenAIProvider) Close() error { return nil }
