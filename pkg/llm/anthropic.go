package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultTimeout bounds every completion call.
const DefaultTimeout = 30 * time.Second

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	client  anthropic.Client
	timeout time.Duration
}

func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic API key is not set")
	}

	return &AnthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		timeout: DefaultTimeout,
	}, nil
}

func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: req.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}

	var text strings.Builder

	for _, block := range resp.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(textBlock.Text)
		}
	}

	return text.String(), nil
}
