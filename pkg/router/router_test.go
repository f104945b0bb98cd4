package router

import (
	"testing"

	"github.com/nchci/hciflow/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestRouteKnownSteps(t *testing.T) {
	tests := []struct {
		step  string
		agent string
	}{
		{"eligibility_check", models.AgentARMSIntegrator},
		{"form_generation", models.AgentFormsSpecialist},
		{"arms_integration", models.AgentARMSIntegrator},
		{"competency_assessment", models.AgentComplianceAdvisor},
		{"training_checklist", models.AgentFormsSpecialist},
		{"go_live", models.AgentCoordinator},
		{"compliance_review", models.AgentComplianceAdvisor},
		{"corrective_action", models.AgentCoordinator},
	}

	for _, tt := range tests {
		t.Run(tt.step, func(t *testing.T) {
			assert.Equal(t, tt.agent, Route(tt.step))
		})
	}
}

func TestRouteUnknownStepDefaultsToCoordinator(t *testing.T) {
	for _, step := range []string{"", "unknown_step", "Eligibility_Check", "go-live"} {
		assert.Equal(t, models.AgentCoordinator, Route(step), "step %q", step)
	}
}
