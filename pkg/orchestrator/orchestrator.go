// Package orchestrator drives users through program workflows one step at a
// time. It is the error boundary of the subsystem: internal failures surface
// as structured results, never as raw upstream errors.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nchci/hciflow/pkg/agent"
	"github.com/nchci/hciflow/pkg/catalog"
	"github.com/nchci/hciflow/pkg/eventbus"
	"github.com/nchci/hciflow/pkg/events"
	"github.com/nchci/hciflow/pkg/models"
	"github.com/nchci/hciflow/pkg/otelhelper"
	"github.com/nchci/hciflow/pkg/router"
	"github.com/nchci/hciflow/pkg/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// FallbackMessage is the user-facing suggestion returned when starting a
// journey fails.
const FallbackMessage = "Please contact support for assistance"

// stepPreviewLimit caps how many upcoming step names a response previews.
const stepPreviewLimit = 3

// StartResult is the response shape of StartJourney. Success is false when
// the coordinator call or persistence failed; Error and Fallback are set in
// that case and the rest is zero.
type StartResult struct {
	Success   bool                       `json:"success"`
	SessionID string                     `json:"sessionId,omitempty"`
	Workflow  *models.WorkflowDefinition `json:"workflow,omitempty"`
	Guidance  *models.AgentResult        `json:"guidance,omitempty"`
	NextSteps []string                   `json:"nextSteps,omitempty"`
	Error     string                     `json:"error,omitempty"`
	Fallback  string                     `json:"fallback,omitempty"`
}

// StepOutcome is the response shape of ExecuteStep. A failed agent call sets
// Success false with Error; the workflow cursor is left untouched in that
// case so the step can be retried.
type StepOutcome struct {
	Success    bool                    `json:"success"`
	Step       string                  `json:"step,omitempty"`
	StepIndex  int                     `json:"stepIndex"`
	AgentID    string                  `json:"agentId,omitempty"`
	StepResult *models.AgentResult     `json:"stepResult,omitempty"`
	NextSteps  []string                `json:"nextSteps,omitempty"`
	Progress   float64                 `json:"progress"`
	Completed  bool                    `json:"completed"`
	Summary    *models.WorkflowSummary `json:"summary,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

// CompletionResult is the response shape of CompleteWorkflow.
type CompletionResult struct {
	Workflow *models.WorkflowDefinition `json:"workflow"`
	Summary  models.WorkflowSummary     `json:"summary"`
}

// StatusResult is the response shape of Status. Both record fields are nil
// when the user has no journey.
type StatusResult struct {
	Workflow *models.ActiveWorkflow `json:"workflow,omitempty"`
	Session  *models.Session        `json:"session,omitempty"`
	IsActive bool                   `json:"isActive"`
}

// Orchestrator owns the agent registry, the session store, and the per-user
// workflow cursors. Safe for concurrent use; mutation is serialized per user.
type Orchestrator struct {
	logger    *slog.Logger
	catalog   *catalog.Catalog
	agents    *agent.Registry
	store     store.Store
	publisher eventbus.EventPublisher
	tracer    trace.Tracer

	locks sync.Map
}

// New builds an orchestrator. publisher may be nil when no event bus is
// configured; tracer may be nil when tracing is disabled.
func New(
	cat *catalog.Catalog,
	agents *agent.Registry,
	st store.Store,
	publisher eventbus.EventPublisher,
	tracer trace.Tracer,
	logger *slog.Logger,
) *Orchestrator {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("orchestrator")
	}

	return &Orchestrator{
		logger:    logger.With("module", "orchestrator"),
		catalog:   cat,
		agents:    agents,
		store:     st,
		publisher: publisher,
		tracer:    tracer,
	}
}

// lockUser serializes all mutation for one user key. Two concurrent writers
// for the same user would otherwise silently drop a step result.
func (o *Orchestrator) lockUser(userID string) func() {
	value, _ := o.locks.LoadOrStore(userID, &sync.Mutex{})
	mu, _ := value.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

func (o *Orchestrator) publish(ctx context.Context, key string, event eventbus.Event) {
	if o.publisher == nil {
		return
	}

	if err := o.publisher.Publish(ctx, key, event); err != nil {
		o.logger.Error("Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}

// StartJourney resolves the intent, records a fresh session and workflow
// cursor for the user, and asks the coordinator agent for overall guidance.
// It never returns a Go error; failures come back as a structured result
// with a fallback suggestion.
func (o *Orchestrator) StartJourney(ctx context.Context, userID, intent string, userContext map[string]any) *StartResult {
	ctx, span := otelhelper.StartSpan(ctx, o.tracer, "orchestrator.start_journey",
		attribute.String(otelhelper.UserIDKey, userID),
		attribute.String(otelhelper.IntentKey, intent),
	)
	defer span.End()

	unlock := o.lockUser(userID)
	defer unlock()

	definition := o.catalog.Resolve(intent)
	span.SetAttributes(attribute.String(otelhelper.WorkflowIDKey, definition.ID))

	now := time.Now().UTC()
	session := &models.Session{
		UserID:    userID,
		Intent:    intent,
		Context:   userContext,
		StartTime: now,
		Status:    models.SessionStatusActive,
	}
	workflow := &models.ActiveWorkflow{
		UserID:      userID,
		Definition:  definition,
		CurrentStep: 0,
		StepResults: make([]*models.AgentResult, len(definition.Steps)),
		Status:      models.WorkflowRunInProgress,
		StartTime:   now,
	}

	if err := o.store.PutSession(ctx, userID, session); err != nil {
		return o.startFailure(ctx, span, userID, definition.ID, "persist session", err)
	}

	if err := o.store.PutActiveWorkflow(ctx, userID, workflow); err != nil {
		return o.startFailure(ctx, span, userID, definition.ID, "persist workflow", err)
	}

	coordinator, err := o.agents.Get(models.AgentCoordinator)
	if err != nil {
		return o.startFailure(ctx, span, userID, definition.ID, "resolve coordinator", err)
	}

	guidance, err := coordinator.Execute(ctx, models.TaskDescriptor{
		Task:            "guide_user_journey",
		Workflow:        definition,
		UserID:          userID,
		Context:         userContext,
		AvailableAgents: o.agents.IDs(),
	})
	if err != nil {
		return o.startFailure(ctx, span, userID, definition.ID, "coordinator guidance", err)
	}

	o.logger.InfoContext(ctx, "Journey started",
		"user_id", userID, "intent", intent, "workflow", definition.ID)

	o.publish(ctx, userID, events.JourneyStarted{
		BaseEvent:    events.NewBaseEvent(events.JourneyStartedEvent, userID, definition.ID),
		Intent:       intent,
		WorkflowName: definition.Name,
		TotalSteps:   len(definition.Steps),
	})

	return &StartResult{
		Success:   true,
		SessionID: userID,
		Workflow:  definition,
		Guidance:  &guidance,
		NextSteps: nextSteps(definition.Steps, 0),
	}
}

func (o *Orchestrator) startFailure(ctx context.Context, span trace.Span, userID, workflowID, stage string, err error) *StartResult {
	o.logger.ErrorContext(ctx, "Failed to start journey",
		"user_id", userID, "stage", stage, "error", err)
	otelhelper.SetError(span, err, attribute.String(otelhelper.UserIDKey, userID))

	o.publish(ctx, userID, events.JourneyFailed{
		BaseEvent: events.NewBaseEvent(events.JourneyFailedEvent, userID, workflowID),
		Stage:     "start_journey",
		Error:     err.Error(),
	})

	return &StartResult{
		Success:  false,
		Error:    fmt.Sprintf("%s: %v", stage, err),
		Fallback: FallbackMessage,
	}
}

// ExecuteStep runs one workflow step for the user. The step index is
// explicitly addressable: re-executing an earlier index overwrites its
// recorded result, and the cursor never moves backwards. An index at or past
// the end of the step list triggers completion instead of execution.
//
// Only two conditions are Go errors: no active workflow, and a step routed
// to an unregistered agent. An upstream model failure comes back as a
// structured outcome with Success false, leaving the cursor untouched.
func (o *Orchestrator) ExecuteStep(ctx context.Context, userID string, stepIndex int) (*StepOutcome, error) {
	ctx, span := otelhelper.StartSpan(ctx, o.tracer, "orchestrator.execute_step",
		attribute.String(otelhelper.UserIDKey, userID),
		attribute.Int(otelhelper.StepIndexKey, stepIndex),
	)
	defer span.End()

	unlock := o.lockUser(userID)
	defer unlock()

	workflow, err := o.store.ActiveWorkflow(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoActiveWorkflow, userID)
		}

		return nil, fmt.Errorf("load workflow: %w", err)
	}

	steps := workflow.Definition.Steps
	if stepIndex >= len(steps) {
		summary, err := o.completeLocked(ctx, userID, workflow)
		if err != nil {
			return nil, err
		}

		return &StepOutcome{
			Success:   true,
			StepIndex: stepIndex,
			Progress:  100,
			Completed: true,
			Summary:   summary,
			NextSteps: []string{"workflow_complete"},
		}, nil
	}

	if !workflow.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrWorkflowCompleted, userID)
	}

	step := steps[stepIndex]
	agentID := router.Route(step)
	span.SetAttributes(
		attribute.String(otelhelper.WorkflowIDKey, workflow.Definition.ID),
		attribute.String(otelhelper.StepNameKey, step),
		attribute.String(otelhelper.AgentIDKey, agentID),
	)

	stepAgent, err := o.agents.Get(agentID)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	var userContext map[string]any
	if session, err := o.store.Session(ctx, userID); err == nil {
		userContext = session.Context
	}

	result, err := stepAgent.Execute(ctx, models.TaskDescriptor{
		Task:      step,
		Workflow:  workflow.Definition,
		StepIndex: &stepIndex,
		UserID:    userID,
		Context:   userContext,
	})
	if err != nil {
		o.logger.ErrorContext(ctx, "Step execution failed",
			"user_id", userID, "step", step, "agent", agentID, "error", err)
		otelhelper.SetError(span, err)

		o.publish(ctx, userID, events.JourneyFailed{
			BaseEvent: events.NewBaseEvent(events.JourneyFailedEvent, userID, workflow.Definition.ID),
			Stage:     "execute_step",
			Error:     err.Error(),
		})

		return &StepOutcome{
			Success:   false,
			Step:      step,
			StepIndex: stepIndex,
			AgentID:   agentID,
			Error:     err.Error(),
		}, nil
	}

	workflow.StepResults[stepIndex] = &result
	if next := stepIndex + 1; next > workflow.CurrentStep {
		workflow.CurrentStep = next
	}

	progress := float64(stepIndex+1) / float64(len(steps)) * 100

	outcome := &StepOutcome{
		Success:    true,
		Step:       step,
		StepIndex:  stepIndex,
		AgentID:    agentID,
		StepResult: &result,
		NextSteps:  nextSteps(steps, workflow.CurrentStep),
		Progress:   progress,
	}

	if workflow.CurrentStep >= len(steps) {
		summary, err := o.completeLocked(ctx, userID, workflow)
		if err != nil {
			return nil, err
		}

		outcome.Completed = true
		outcome.Summary = summary
	} else if err := o.store.PutActiveWorkflow(ctx, userID, workflow); err != nil {
		return nil, fmt.Errorf("persist workflow: %w", err)
	}

	o.logger.InfoContext(ctx, "Step completed",
		"user_id", userID, "step", step, "agent", agentID, "progress", progress)

	o.publish(ctx, userID, events.StepCompleted{
		BaseEvent: events.NewBaseEvent(events.StepCompletedEvent, userID, workflow.Definition.ID),
		Step:      step,
		StepIndex: stepIndex,
		AgentID:   agentID,
		Progress:  progress,
	})

	return outcome, nil
}

// CompleteWorkflow marks the user's workflow finished and produces a
// summary. Safe to call repeatedly; the completion timestamp is set exactly
// once, on the first call.
func (o *Orchestrator) CompleteWorkflow(ctx context.Context, userID string) (*CompletionResult, error) {
	unlock := o.lockUser(userID)
	defer unlock()

	workflow, err := o.store.ActiveWorkflow(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoActiveWorkflow, userID)
		}

		return nil, fmt.Errorf("load workflow: %w", err)
	}

	summary, err := o.completeLocked(ctx, userID, workflow)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{Workflow: workflow.Definition, Summary: *summary}, nil
}

// completeLocked performs the completion transition. The caller must hold
// the user lock.
func (o *Orchestrator) completeLocked(ctx context.Context, userID string, workflow *models.ActiveWorkflow) (*models.WorkflowSummary, error) {
	firstCompletion := workflow.CompletedAt == nil

	if firstCompletion {
		now := time.Now().UTC()
		workflow.CompletedAt = &now
		workflow.Status = models.WorkflowRunCompleted

		if err := o.store.PutActiveWorkflow(ctx, userID, workflow); err != nil {
			return nil, fmt.Errorf("persist workflow: %w", err)
		}

		if session, err := o.store.Session(ctx, userID); err == nil {
			session.Status = models.SessionStatusCompleted
			if err := o.store.PutSession(ctx, userID, session); err != nil {
				return nil, fmt.Errorf("persist session: %w", err)
			}
		}
	}

	summary := &models.WorkflowSummary{
		WorkflowID:     workflow.Definition.ID,
		CompletedSteps: workflow.CompletedSteps(),
		TotalSteps:     len(workflow.Definition.Steps),
		FormsGenerated: workflow.Definition.RequiredForms,
	}

	if workflow.CompletedAt != nil && !workflow.StartTime.IsZero() {
		duration := workflow.CompletedAt.Sub(workflow.StartTime)
		summary.Duration = &duration
	}

	if firstCompletion {
		o.logger.InfoContext(ctx, "Workflow completed",
			"user_id", userID, "workflow", workflow.Definition.ID,
			"completed_steps", summary.CompletedSteps)

		o.publish(ctx, userID, events.WorkflowCompleted{
			BaseEvent: events.NewBaseEvent(events.WorkflowCompletedEvent, userID, workflow.Definition.ID),
			Summary:   *summary,
		})
	}

	return summary, nil
}

// Status is a pure read. A user with no journey gets IsActive false and nil
// records, never an error. It takes the user lock so a status query never
// observes a half-applied step transition.
func (o *Orchestrator) Status(ctx context.Context, userID string) (*StatusResult, error) {
	unlock := o.lockUser(userID)
	defer unlock()

	result := &StatusResult{}

	workflow, err := o.store.ActiveWorkflow(ctx, userID)
	if err != nil && !store.IsNotFound(err) {
		return nil, fmt.Errorf("load workflow: %w", err)
	}

	session, err := o.store.Session(ctx, userID)
	if err != nil && !store.IsNotFound(err) {
		return nil, fmt.Errorf("load session: %w", err)
	}

	result.Workflow = workflow
	result.Session = session
	result.IsActive = workflow.IsActive()

	return result, nil
}

// nextSteps previews the remaining step names starting at from, capped at
// three. An exhausted list previews the completion marker instead.
func nextSteps(steps []string, from int) []string {
	if from >= len(steps) {
		return []string{"workflow_complete"}
	}

	end := from + stepPreviewLimit
	if end > len(steps) {
		end = len(steps)
	}

	preview := make([]string, end-from)
	copy(preview, steps[from:end])

	return preview
}
