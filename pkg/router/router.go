// Package router assigns workflow steps to the agent responsible for them.
package router

import "github.com/nchci/hciflow/pkg/models"

// DefaultAgent handles any step without an explicit assignment.
const DefaultAgent = models.AgentCoordinator

var stepAgents = map[string]string{
	"eligibility_check":     models.AgentARMSIntegrator,
	"form_generation":       models.AgentFormsSpecialist,
	"arms_integration":      models.AgentARMSIntegrator,
	"competency_assessment": models.AgentComplianceAdvisor,
	"training_checklist":    models.AgentFormsSpecialist,
	"documentation":         models.AgentFormsSpecialist,
	"vendor_agreement":      models.AgentComplianceAdvisor,
	"integration_testing":   models.AgentARMSIntegrator,
	"go_live":               models.AgentCoordinator,
	"compliance_review":     models.AgentComplianceAdvisor,
	"documentation_audit":   models.AgentComplianceAdvisor,
	"corrective_action":     models.AgentCoordinator,
}

// Route returns the agent id responsible for executing the named step.
// Unknown steps fall through to the coordinator, same permissive policy as
// the intent catalog.
func Route(step string) string {
	if agentID, ok := stepAgents[step]; ok {
		return agentID
	}

	return DefaultAgent
}
