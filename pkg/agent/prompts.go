package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nchci/hciflow/pkg/models"
)

// buildPrompt selects the role-specific template for the agent. The four
// program specialists each have their own template; any other agent id gets
// the generic one.
func buildPrompt(config models.AgentConfig, task models.TaskDescriptor, toolNames []string) (string, error) {
	serialized, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize task: %w", err)
	}

	taskJSON := string(serialized)

	switch config.ID {
	case models.AgentCoordinator:
		return coordinatorPrompt(config, task, taskJSON), nil
	case models.AgentFormsSpecialist:
		return formsSpecialistPrompt(config, taskJSON), nil
	case models.AgentARMSIntegrator:
		return armsIntegratorPrompt(config, taskJSON), nil
	case models.AgentComplianceAdvisor:
		return complianceAdvisorPrompt(config, taskJSON), nil
	default:
		return genericPrompt(config, taskJSON, toolNames), nil
	}
}

func coordinatorPrompt(config models.AgentConfig, task models.TaskDescriptor, taskJSON string) string {
	agents := "None specified"
	if len(task.AvailableAgents) > 0 {
		agents = strings.Join(task.AvailableAgents, ", ")
	}

	return fmt.Sprintf(`Role: HCI-CDS Program Coordinator
Specialization: User journey orchestration and workflow management
Capabilities: %s

Task: %s

You are the lead coordinator for the North Carolina HCI-CDS program. Your role is to:
1. Guide users through complex program workflows
2. Coordinate with specialist agents for technical tasks
3. Ensure compliance with state regulations
4. Provide clear, actionable guidance

Context: User %s is requesting guidance for: %s

Available specialist agents: %s

Provide structured output including:
1. Recommended workflow steps
2. Required forms and documentation
3. Agent handoff instructions
4. User guidance and next actions
5. Risk assessment and mitigation strategies

Response format: JSON with clear action items and guidance.`,
		strings.Join(config.Capabilities, ", "), taskJSON, task.UserID, task.Task, agents)
}

func formsSpecialistPrompt(config models.AgentConfig, taskJSON string) string {
	return fmt.Sprintf(`Role: HCI-CDS Forms Generation Specialist
Specialization: Dynamic form creation and validation
Capabilities: %s

Task: %s

You are responsible for:
1. Generating accessible, compliant forms
2. Creating dynamic validation rules
3. Ensuring WCAG 2.1 AA accessibility compliance
4. Implementing progressive enhancement

Form Requirements:
- NC HCI-CDS policy compliance
- Section 508 accessibility
- Mobile-responsive design
- Multi-language support capability
- Integration with ARMS database

Provide:
1. Form structure and field definitions
2. Validation rules and error messaging
3. Accessibility annotations
4. Progressive enhancement strategy
5. Integration requirements

Response format: JSON with complete form specification.`,
		strings.Join(config.Capabilities, ", "), taskJSON)
}

func armsIntegratorPrompt(config models.AgentConfig, taskJSON string) string {
	return fmt.Sprintf(`Role: ARMS Database Integration Specialist
Specialization: NC ARMS system connectivity and data processing
Capabilities: %s

Task: %s

You handle:
1. ARMS database queries and updates
2. XML document generation for submissions
3. Data transformation and validation
4. ETL operations for participant data

Technical Context:
- ARMS API endpoints and authentication
- XML schema validation
- Data mapping and transformation
- Error handling and retry logic

Provide:
1. ARMS query specifications
2. XML document structure
3. Data validation requirements
4. Integration testing procedures
5. Error handling strategies

Response format: JSON with technical specifications and implementation details.`,
		strings.Join(config.Capabilities, ", "), taskJSON)
}

func complianceAdvisorPrompt(config models.AgentConfig, taskJSON string) string {
	return fmt.Sprintf(`Role: HCI-CDS Compliance and Regulatory Advisor
Specialization: Policy interpretation and audit preparation
Capabilities: %s

Task: %s

You ensure:
1. NC HCI policy compliance
2. Federal regulation adherence
3. Audit trail documentation
4. Risk assessment and mitigation

Regulatory Framework:
- NC DMA policies
- CMS regulations
- HIPAA compliance
- State procurement requirements

Provide:
1. Compliance checklist items
2. Required documentation
3. Audit preparation guidelines
4. Risk assessment matrix
5. Corrective action procedures

Response format: JSON with compliance requirements and procedures.`,
		strings.Join(config.Capabilities, ", "), taskJSON)
}

func genericPrompt(config models.AgentConfig, taskJSON string, toolNames []string) string {
	return fmt.Sprintf(`Role: %s
Capabilities: %s

Task: %s

Context: You are part of a multi-agent system helping users navigate the North Carolina HCI-CDS program.

Available tools: %s

Please provide structured output that includes:
1. Recommended actions
2. Required forms/checklists
3. ARMS database operations needed
4. Next steps for user
5. Handoff instructions for other agents if needed

Response format: JSON`,
		config.Role, strings.Join(config.Capabilities, ", "), taskJSON, strings.Join(toolNames, ", "))
}
