// Package catalog maps user intents to workflow definitions.
package catalog

import (
	"log/slog"

	"github.com/nchci/hciflow/pkg/models"
)

// DefaultIntent is substituted whenever an intent is not in the catalog.
const DefaultIntent = "participant_onboarding"

// Catalog is the fixed table of known program workflows. It is built once and
// shared read-only.
type Catalog struct {
	logger      *slog.Logger
	definitions map[string]*models.WorkflowDefinition
}

func New(logger *slog.Logger) *Catalog {
	return &Catalog{
		logger:      logger,
		definitions: programWorkflows(),
	}
}

// Resolve returns the definition for the given intent. Unknown intents never
// fail: they resolve to the participant onboarding workflow with a warning,
// so a caller always receives a usable definition.
func (c *Catalog) Resolve(intent string) *models.WorkflowDefinition {
	if definition, ok := c.definitions[intent]; ok {
		return definition
	}

	c.logger.Warn("Unknown intent, defaulting to participant onboarding",
		"intent", intent,
		"default", DefaultIntent)

	return c.definitions[DefaultIntent]
}

// Intents lists every known intent key.
func (c *Catalog) Intents() []string {
	intents := make([]string, 0, len(c.definitions))
	for intent := range c.definitions {
		intents = append(intents, intent)
	}

	return intents
}

func programWorkflows() map[string]*models.WorkflowDefinition {
	return map[string]*models.WorkflowDefinition{
		"participant_onboarding": {
			ID:            "participant_onboarding",
			Name:          "Participant Onboarding",
			Steps:         []string{"eligibility_check", "form_generation", "arms_integration"},
			RequiredForms: []string{"DA-101", "participant_enrollment", "care_plan"},
			Agents:        []string{models.AgentCoordinator, models.AgentFormsSpecialist, models.AgentARMSIntegrator},
			EstimatedTime: "45-60 minutes",
			Complexity:    "medium",
		},
		"care_advisor_certification": {
			ID:            "care_advisor_certification",
			Name:          "Care Advisor Certification",
			Steps:         []string{"competency_assessment", "training_checklist", "documentation"},
			RequiredForms: []string{"advisor_credentials", "supervision_plan"},
			Agents:        []string{models.AgentCoordinator, models.AgentComplianceAdvisor, models.AgentFormsSpecialist},
			EstimatedTime: "30-45 minutes",
			Complexity:    "low",
		},
		"fms_vendor_setup": {
			ID:            "fms_vendor_setup",
			Name:          "FMS Vendor Setup",
			Steps:         []string{"vendor_agreement", "integration_testing", "go_live"},
			RequiredForms: []string{"vendor_contract", "technical_specs"},
			Agents:        []string{models.AgentCoordinator, models.AgentARMSIntegrator, models.AgentComplianceAdvisor},
			EstimatedTime: "60-90 minutes",
			Complexity:    "high",
		},
		"quality_assurance_audit": {
			ID:            "quality_assurance_audit",
			Name:          "Quality Assurance Audit",
			Steps:         []string{"compliance_review", "documentation_audit", "corrective_action"},
			RequiredForms: []string{"qa_checklist", "audit_findings", "improvement_plan"},
			Agents:        []string{models.AgentComplianceAdvisor, models.AgentFormsSpecialist, models.AgentCoordinator},
			EstimatedTime: "90-120 minutes",
			Complexity:    "high",
		},
	}
}
