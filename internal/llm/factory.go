package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/paxth/paxth/internal/config"
)

const deepseekBaseURL = "https://api.deepseek.com"

// NewClient builds the provider client named by cfg.Provider. "deepseek" is
// the OpenAI-compatible client pointed at the DeepSeek endpoint.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "deepseek":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = deepseekBaseURL
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, baseURL, cfg.Temperature, cfg.MaxTokens), nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Temperature, cfg.MaxTokens), nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
