package cmd

import (
	"fmt"

	"github.com/nchci/hciflow/pkg/llm"
)

// NewLLMClient builds the model client for the given provider.
func NewLLMClient(provider, anthropicKey, ollamaURL string) (llm.Client, error) {
	switch provider {
	case "anthropic", "":
		client, err := llm.NewAnthropicClient(anthropicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create anthropic client: %w", err)
		}

		return client, nil
	case "ollama":
		return llm.NewOllamaClient(ollamaURL), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
