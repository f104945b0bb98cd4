// Package agent implements the role-specialized AI agents of the HCI-CDS
// program and the registry that holds them.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nchci/hciflow/pkg/llm"
	"github.com/nchci/hciflow/pkg/models"
)

// maxTokens is the fixed token budget for every agent call.
const maxTokens = 4000

// Agent wraps one language-model role. Instances are long-lived and shared
// across sessions; each call is independent of prior calls except for what
// the caller includes in the task context.
type Agent struct {
	config models.AgentConfig
	client llm.Client
	tools  *ToolSet
	logger *slog.Logger

	mu      sync.Mutex
	history []models.HistoryEntry
}

func New(config models.AgentConfig, client llm.Client, tools *ToolSet, logger *slog.Logger) *Agent {
	return &Agent{
		config: config,
		client: client,
		tools:  tools,
		logger: logger,
	}
}

func (a *Agent) ID() string             { return a.config.ID }
func (a *Agent) Role() string           { return a.config.Role }
func (a *Agent) Capabilities() []string { return a.config.Capabilities }

// Tools exposes the agent's tool set for direct invocation.
func (a *Agent) Tools() *ToolSet { return a.tools }

// Execute builds the role-specific prompt for the task, submits it, and
// parses the response. Transport failures surface as errors; unparseable
// responses do not, they degrade to a text envelope.
func (a *Agent) Execute(ctx context.Context, task models.TaskDescriptor) (models.AgentResult, error) {
	prompt, err := buildPrompt(a.config, task, a.tools.Names())
	if err != nil {
		return models.AgentResult{}, fmt.Errorf("agent execution failed: %w", err)
	}

	text, err := a.client.Complete(ctx, llm.CompletionRequest{
		Model:     a.config.Model,
		MaxTokens: maxTokens,
		Prompt:    prompt,
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "Agent execution failed",
			"agent", a.config.ID,
			"task", task.Task,
			"error", err)

		return models.AgentResult{}, fmt.Errorf("agent execution failed: %w", err)
	}

	result := a.parseResponse(text)
	a.record(task, result)

	return result, nil
}

// parseResponse attempts a strict JSON parse when the response looks like a
// document, and otherwise wraps the raw text. Never fails.
func (a *Agent) parseResponse(text string) models.AgentResult {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var data any
		if err := json.Unmarshal([]byte(trimmed), &data); err == nil {
			return models.Structured(data)
		}

		a.logger.Warn("Failed to parse agent response as JSON, returning as text",
			"agent", a.config.ID)
	}

	return models.Unstructured(models.TextEnvelope{
		AgentID:      a.config.ID,
		AgentRole:    a.config.Role,
		Response:     text,
		Timestamp:    time.Now().UTC(),
		Capabilities: a.config.Capabilities,
	})
}

func (a *Agent) record(task models.TaskDescriptor, result models.AgentResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, models.HistoryEntry{
		Task:      task,
		Result:    result,
		Timestamp: time.Now().UTC(),
	})
}

// ConversationHistory returns a copy of the agent's local history. It exists
// for introspection and debugging only.
func (a *Agent) ConversationHistory() []models.HistoryEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := make([]models.HistoryEntry, len(a.history))
	copy(history, a.history)

	return history
}

func (a *Agent) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = nil
}
