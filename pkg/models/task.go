package models

import "time"

// TaskDescriptor is the unit of work handed to an agent. Task is the only
// mandatory field; the rest carries whatever the orchestrator knows about the
// journey at dispatch time.
type TaskDescriptor struct {
	Task            string              `json:"task" validate:"required"`
	Workflow        *WorkflowDefinition `json:"workflow,omitempty"`
	StepIndex       *int                `json:"stepIndex,omitempty"`
	UserID          string              `json:"userId,omitempty"`
	Context         map[string]any      `json:"context,omitempty"`
	AvailableAgents []string            `json:"availableAgents,omitempty"`
}

// HistoryEntry is one record in an agent's local conversation history. The
// history is owned exclusively by the agent and is never read by the
// orchestrator.
type HistoryEntry struct {
	Task      TaskDescriptor `json:"task"`
	Result    AgentResult    `json:"result"`
	Timestamp time.Time      `json:"timestamp"`
}
