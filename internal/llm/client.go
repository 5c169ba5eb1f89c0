// Package llm provides the text-generation provider clients used by the
// content generation service.
package llm

import (
	"context"
	"fmt"

	"postpilot/internal/config"
)

// Client is the provider-agnostic completion interface. Implementations make
// exactly one upstream call per invocation; callers decide what a failure
// means, there is no retrying at this layer.
type Client interface {
	// Complete sends a user prompt and returns the completion text.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteWithSystem sends a prompt with a system message.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewClient builds the provider selected by configuration.
func NewClient(cfg *config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI, "":
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case config.ProviderGemini:
		return NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
