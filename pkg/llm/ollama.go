package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaClient targets a local Ollama instance for deployments without
// outbound API access. It speaks the /api/generate endpoint with streaming
// disabled so the whole completion arrives in one body.
type OllamaClient struct {
	baseURL string
	httpc   *http.Client
}

func NewOllamaClient(baseURL string) *OllamaClient {
	return &OllamaClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (c *OllamaClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return "", fmt.Errorf("ollama api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var generated ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("ollama response: %w", err)
	}

	return generated.Response, nil
}
