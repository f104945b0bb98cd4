// Package models defines the core domain models for HCI-CDS workflow orchestration.
package models

import "time"

// WorkflowDefinition describes one guided multi-step process. Definitions are
// built once at catalog construction time and shared read-only across all
// sessions; they are never owned or mutated by a user journey.
type WorkflowDefinition struct {
	ID            string   `json:"id"            validate:"required"`
	Name          string   `json:"name"          validate:"required"`
	Steps         []string `json:"steps"         validate:"required,min=1"`
	RequiredForms []string `json:"requiredForms"`
	Agents        []string `json:"agents"`
	EstimatedTime string   `json:"estimatedTime"`
	Complexity    string   `json:"complexity"`
}

// SessionStatus is the lifecycle state of a user session.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is the per-user record of which intent and context is currently
// being pursued. Starting a new journey for the same user overwrites the
// previous session, last write wins.
type Session struct {
	UserID    string         `json:"userId"`
	Intent    string         `json:"intent"`
	Context   map[string]any `json:"context,omitempty"`
	StartTime time.Time      `json:"startTime"`
	Status    SessionStatus  `json:"status"`
}

// WorkflowRunStatus is the lifecycle state of an active workflow.
type WorkflowRunStatus string

const (
	WorkflowRunInProgress WorkflowRunStatus = "in_progress"
	WorkflowRunCompleted  WorkflowRunStatus = "completed"

	// WorkflowRunActiveLegacy is an older synonym for in_progress that may
	// still appear in persisted records and must be treated as active.
	WorkflowRunActiveLegacy WorkflowRunStatus = "active"
)

// ActiveWorkflow is the per-user execution cursor over a workflow definition.
// StepResults is indexed the same as Definition.Steps; slot i is non-nil once
// step i has been executed. CurrentStep is monotonically non-decreasing and
// never exceeds len(Definition.Steps).
type ActiveWorkflow struct {
	UserID      string              `json:"userId"`
	Definition  *WorkflowDefinition `json:"definition"`
	CurrentStep int                 `json:"currentStep"`
	StepResults []*AgentResult      `json:"stepResults"`
	Status      WorkflowRunStatus   `json:"status"`
	StartTime   time.Time           `json:"startTime"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
}

// IsActive reports whether the workflow still accepts step execution.
func (w *ActiveWorkflow) IsActive() bool {
	if w == nil {
		return false
	}

	return w.Status == WorkflowRunInProgress || w.Status == WorkflowRunActiveLegacy
}

// CompletedSteps counts the steps that have recorded a result.
func (w *ActiveWorkflow) CompletedSteps() int {
	count := 0

	for _, result := range w.StepResults {
		if result != nil {
			count++
		}
	}

	return count
}

// WorkflowSummary is produced when a workflow reaches completion.
type WorkflowSummary struct {
	WorkflowID     string         `json:"workflowId"`
	CompletedSteps int            `json:"completedSteps"`
	TotalSteps     int            `json:"totalSteps"`
	FormsGenerated []string       `json:"formsGenerated"`
	Duration       *time.Duration `json:"duration,omitempty"`
}
