// Package llm provides the language-model boundary used by program agents.
package llm

import "context"

// CompletionRequest is a single-turn text generation request. Each call is
// independent; no multi-turn context is carried between requests.
type CompletionRequest struct {
	Model     string
	MaxTokens int64
	Prompt    string
}

// Client submits one prompt and returns the textual payload of the response.
// Any transport failure, timeout, or non-success status is an error; content
// interpretation is left to the caller.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
