package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/dealerdesk/dealerdesk/pkg/config"
)

var ErrAPIKeyMissing = errors.New("OpenAI API key not configured")

// NewChatModel creates the eino chat model used for every LLM call. The
// returned model is an injected capability of the chat service; tests swap
// in a fake.
func NewChatModel(ctx context.Context, cfg *config.AppConfig) (model.ToolCallingChatModel, error) {
	apiKey := cfg.OpenAIAPIKey()
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  apiKey,
		Model:   cfg.Model(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI model: %w", err)
	}
	return chatModel, nil
}
