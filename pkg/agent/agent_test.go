package agent

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/nchci/hciflow/pkg/llm"
	"github.com/nchci/hciflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	requests []llm.CompletionRequest
}

func (f *fakeClient) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)

	if f.err != nil {
		return "", f.err
	}

	return f.response, nil
}

func testAgent(id string, client llm.Client) *Agent {
	var config models.AgentConfig

	for _, c := range models.DefaultAgentConfigs() {
		if c.ID == id {
			config = c
		}
	}

	if config.ID == "" {
		config = models.AgentConfig{ID: id, Role: "generic_helper", Model: models.DefaultModel, Capabilities: []string{"helping"}}
	}

	return New(config, client, NewToolSet(), slog.Default())
}

func TestExecuteParsesStructuredResponse(t *testing.T) {
	client := &fakeClient{response: `{"a":1}`}
	a := testAgent(models.AgentCoordinator, client)

	result, err := a.Execute(t.Context(), models.TaskDescriptor{Task: "guide_user_journey"})
	require.NoError(t, err)

	assert.Equal(t, models.ResultKindStructured, result.Kind)
	assert.Equal(t, map[string]any{"a": float64(1)}, result.Data)
	assert.Nil(t, result.Text)
}

func TestExecuteWrapsPlainTextResponse(t *testing.T) {
	const text = "You should start with the eligibility check."

	client := &fakeClient{response: text}
	a := testAgent(models.AgentCoordinator, client)

	result, err := a.Execute(t.Context(), models.TaskDescriptor{Task: "guide_user_journey"})
	require.NoError(t, err)

	assert.Equal(t, models.ResultKindText, result.Kind)
	require.NotNil(t, result.Text)
	assert.Equal(t, models.AgentCoordinator, result.Text.AgentID)
	assert.Equal(t, "orchestrate_user_journey", result.Text.AgentRole)
	assert.Equal(t, text, result.Text.Response)
	assert.False(t, result.Text.Timestamp.IsZero())
	assert.NotEmpty(t, result.Text.Capabilities)
}

func TestExecuteWrapsMalformedJSONAsText(t *testing.T) {
	const text = `{"unterminated": `

	client := &fakeClient{response: text}
	a := testAgent(models.AgentFormsSpecialist, client)

	result, err := a.Execute(t.Context(), models.TaskDescriptor{Task: "form_generation"})
	require.NoError(t, err)

	assert.Equal(t, models.ResultKindText, result.Kind)
	assert.Equal(t, text, result.Text.Response)
}

func TestExecuteSurfacesUpstreamFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	client := &fakeClient{err: upstream}
	a := testAgent(models.AgentCoordinator, client)

	_, err := a.Execute(t.Context(), models.TaskDescriptor{Task: "guide_user_journey"})
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.Contains(t, err.Error(), "agent execution failed")

	assert.Empty(t, a.ConversationHistory(), "failed calls must not be recorded")
}

func TestExecuteUsesFixedTokenBudget(t *testing.T) {
	client := &fakeClient{response: "ok"}
	a := testAgent(models.AgentARMSIntegrator, client)

	_, err := a.Execute(t.Context(), models.TaskDescriptor{Task: "arms_integration"})
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	assert.Equal(t, int64(4000), client.requests[0].MaxTokens)
	assert.Equal(t, models.DefaultModel, client.requests[0].Model)
}

func TestConversationHistory(t *testing.T) {
	client := &fakeClient{response: "noted"}
	a := testAgent(models.AgentComplianceAdvisor, client)

	for range 3 {
		_, err := a.Execute(t.Context(), models.TaskDescriptor{Task: "compliance_review"})
		require.NoError(t, err)
	}

	history := a.ConversationHistory()
	require.Len(t, history, 3)
	assert.Equal(t, "compliance_review", history[0].Task.Task)
	assert.Equal(t, models.ResultKindText, history[0].Result.Kind)

	a.ClearHistory()
	assert.Empty(t, a.ConversationHistory())
}

func TestRegistry(t *testing.T) {
	client := &fakeClient{response: "ok"}
	registry := InitializeDefault(client, NewToolSet(), slog.Default())

	assert.Equal(t, []string{
		models.AgentCoordinator,
		models.AgentFormsSpecialist,
		models.AgentARMSIntegrator,
		models.AgentComplianceAdvisor,
	}, registry.IDs())

	coordinator, err := registry.Get(models.AgentCoordinator)
	require.NoError(t, err)
	assert.Equal(t, models.AgentCoordinator, coordinator.ID())

	_, err = registry.Get("scheduler")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAgentNotAvailable)
}
