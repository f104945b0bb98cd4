package models

// Agent identifiers. The router and the prompt builders dispatch on these.
const (
	AgentCoordinator       = "coordinator"
	AgentFormsSpecialist   = "forms_specialist"
	AgentARMSIntegrator    = "arms_integrator"
	AgentComplianceAdvisor = "compliance_advisor"
)

// DefaultModel is the language model every program agent targets.
const DefaultModel = "claude-sonnet-4-20250514"

// AgentConfig describes one long-lived agent instance shared across sessions.
type AgentConfig struct {
	ID           string   `json:"id"           validate:"required"`
	Role         string   `json:"role"         validate:"required"`
	Model        string   `json:"model"        validate:"required"`
	Capabilities []string `json:"capabilities"`
}

// DefaultAgentConfigs returns the four specialist agents of the HCI-CDS
// program in registration order.
func DefaultAgentConfigs() []AgentConfig {
	return []AgentConfig{
		{
			ID:           AgentCoordinator,
			Role:         "orchestrate_user_journey",
			Model:        DefaultModel,
			Capabilities: []string{"workflow_design", "user_guidance", "decision_tree_navigation"},
		},
		{
			ID:           AgentFormsSpecialist,
			Role:         "form_generation_expert",
			Model:        DefaultModel,
			Capabilities: []string{"checklist_creation", "validation_rules", "accessibility_compliance"},
		},
		{
			ID:           AgentARMSIntegrator,
			Role:         "database_interface",
			Model:        DefaultModel,
			Capabilities: []string{"xml_generation", "etl_operations", "data_validation"},
		},
		{
			ID:           AgentComplianceAdvisor,
			Role:         "regulatory_guidance",
			Model:        DefaultModel,
			Capabilities: []string{"policy_interpretation", "requirement_mapping", "audit_preparation"},
		},
	}
}
