// Package events defines event types and structures for journey lifecycle
// notifications.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/nchci/hciflow/pkg/models"
)

type EventType string

// Kafka topic carrying all journey lifecycle events.
const Topic = "hciflow.journeys"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	JourneyStartedEvent    EventType = "journey.started"
	StepCompletedEvent     EventType = "journey.step.completed"
	WorkflowCompletedEvent EventType = "journey.workflow.completed"
	JourneyFailedEvent     EventType = "journey.failed"
)

type BaseEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id"`
	WorkflowID string    `json:"workflow_id"`
}

type JourneyStarted struct {
	BaseEvent

	Intent       string `json:"intent"`
	WorkflowName string `json:"workflow_name"`
	TotalSteps   int    `json:"total_steps"`
}

func (j JourneyStarted) GetType() EventType {
	return JourneyStartedEvent
}

type StepCompleted struct {
	BaseEvent

	Step      string  `json:"step"`
	StepIndex int     `json:"step_index"`
	AgentID   string  `json:"agent_id"`
	Progress  float64 `json:"progress"`
}

func (s StepCompleted) GetType() EventType {
	return StepCompletedEvent
}

type WorkflowCompleted struct {
	BaseEvent

	Summary models.WorkflowSummary `json:"summary"`
}

func (w WorkflowCompleted) GetType() EventType {
	return WorkflowCompletedEvent
}

type JourneyFailed struct {
	BaseEvent

	Stage string `json:"stage"`
	Error string `json:"error"`
}

func (j JourneyFailed) GetType() EventType {
	return JourneyFailedEvent
}

func NewBaseEvent(eventType EventType, userID, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		UserID:     userID,
		WorkflowID: workflowID,
	}
}
