package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveWorkflowIsActive(t *testing.T) {
	tests := []struct {
		name     string
		workflow *ActiveWorkflow
		expected bool
	}{
		{"nil workflow", nil, false},
		{"in progress", &ActiveWorkflow{Status: WorkflowRunInProgress}, true},
		{"legacy active", &ActiveWorkflow{Status: WorkflowRunActiveLegacy}, true},
		{"completed", &ActiveWorkflow{Status: WorkflowRunCompleted}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.workflow.IsActive())
		})
	}
}

func TestActiveWorkflowCompletedSteps(t *testing.T) {
	result := Structured(map[string]any{"ok": true})
	workflow := &ActiveWorkflow{
		StepResults: []*AgentResult{&result, nil, &result},
	}

	assert.Equal(t, 2, workflow.CompletedSteps())
}

func TestAgentResultPayload(t *testing.T) {
	structured := Structured(map[string]any{"a": float64(1)})
	assert.Equal(t, map[string]any{"a": float64(1)}, structured.Payload())

	envelope := TextEnvelope{
		AgentID:   AgentCoordinator,
		AgentRole: "orchestrate_user_journey",
		Response:  "plain text",
		Timestamp: time.Now(),
	}
	text := Unstructured(envelope)

	payload, ok := text.Payload().(*TextEnvelope)
	require.True(t, ok)
	assert.Equal(t, "plain text", payload.Response)

	var empty AgentResult
	assert.Nil(t, empty.Payload())
}

func TestActiveWorkflowRoundTrip(t *testing.T) {
	result := Structured(map[string]any{"step": "done"})
	now := time.Now().UTC().Truncate(time.Second)

	workflow := &ActiveWorkflow{
		UserID: "user-1",
		Definition: &WorkflowDefinition{
			ID:    "participant_onboarding",
			Name:  "Participant Onboarding",
			Steps: []string{"eligibility_check", "form_generation", "arms_integration"},
		},
		CurrentStep: 1,
		StepResults: []*AgentResult{&result, nil, nil},
		Status:      WorkflowRunInProgress,
		StartTime:   now,
	}

	payload, err := json.Marshal(workflow)
	require.NoError(t, err)

	var decoded ActiveWorkflow
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, workflow.UserID, decoded.UserID)
	assert.Equal(t, workflow.CurrentStep, decoded.CurrentStep)
	assert.Len(t, decoded.StepResults, 3)
	require.NotNil(t, decoded.StepResults[0])
	assert.Equal(t, ResultKindStructured, decoded.StepResults[0].Kind)
	assert.Nil(t, decoded.StepResults[1])
}

func TestDefaultAgentConfigs(t *testing.T) {
	configs := DefaultAgentConfigs()
	require.Len(t, configs, 4)

	ids := make([]string, 0, len(configs))
	for _, cfg := range configs {
		ids = append(ids, cfg.ID)
		assert.Equal(t, DefaultModel, cfg.Model)
		assert.NotEmpty(t, cfg.Capabilities)
	}

	assert.Equal(t, []string{
		AgentCoordinator,
		AgentFormsSpecialist,
		AgentARMSIntegrator,
		AgentComplianceAdvisor,
	}, ids)
}

func TestFormSpecFields(t *testing.T) {
	spec := &FormSpec{
		Sections: []SectionSpec{
			{ID: "a", Fields: []FieldSpec{{Name: "one"}, {Name: "two"}}},
			{ID: "b", Fields: []FieldSpec{{Name: "three"}}},
		},
	}

	fields := spec.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "three", fields[2].Name)
}
