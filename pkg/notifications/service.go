// Package notifications turns journey lifecycle events into progress updates
// for participants.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nchci/hciflow/pkg/eventbus"
	"github.com/nchci/hciflow/pkg/events"
)

// Notification is the delivery-agnostic message shape. Senders decide the
// channel (webhook, email bridge, log).
type Notification struct {
	UserID     string    `json:"user_id"`
	WorkflowID string    `json:"workflow_id"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// Sender delivers a composed notification.
type Sender interface {
	Send(ctx context.Context, notification Notification) error
}

// WebhookSender posts notifications as JSON to a configured endpoint.
type WebhookSender struct {
	URL    string
	Client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebhookSender) Send(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %d", resp.StatusCode)
	}

	return nil
}

// LogSender writes notifications to the structured log. Used when no webhook
// is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (l *LogSender) Send(_ context.Context, notification Notification) error {
	l.Logger.Info("notification",
		"user_id", notification.UserID,
		"workflow_id", notification.WorkflowID,
		"subject", notification.Subject,
		"message", notification.Message,
	)

	return nil
}

// Service subscribes to journey events and forwards participant-facing
// updates to the configured sender.
type Service struct {
	sender Sender
	logger *slog.Logger
}

func NewService(sender Sender, logger *slog.Logger) *Service {
	return &Service{sender: sender, logger: logger.With("module", "notifications")}
}

// Register attaches the service handlers to the bus. Subscribe must still be
// called on the bus afterwards.
func (s *Service) Register(bus eventbus.EventSubscriber) error {
	handlers := map[events.EventType]eventbus.EventHandler{
		events.JourneyStartedEvent:    s.handleJourneyStarted,
		events.StepCompletedEvent:     s.handleStepCompleted,
		events.WorkflowCompletedEvent: s.handleWorkflowCompleted,
		events.JourneyFailedEvent:     s.handleJourneyFailed,
	}

	for eventType, handler := range handlers {
		if err := bus.Handle(eventType, handler); err != nil {
			return fmt.Errorf("register %s handler: %w", eventType, err)
		}
	}

	return nil
}

func (s *Service) deliver(ctx context.Context, notification Notification) error {
	if err := s.sender.Send(ctx, notification); err != nil {
		s.logger.Error("notification delivery failed",
			"user_id", notification.UserID, "subject", notification.Subject, "error", err)

		return err
	}

	return nil
}

func (s *Service) handleJourneyStarted(ctx context.Context, event any) error {
	started, ok := event.(*events.JourneyStarted)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	return s.deliver(ctx, Notification{
		UserID:     started.UserID,
		WorkflowID: started.WorkflowID,
		Subject:    "HCI-CDS Enrollment Started",
		Message: fmt.Sprintf("Your %s journey has started. It has %d steps and you will receive an update as each one completes.",
			started.WorkflowName, started.TotalSteps),
		Timestamp: started.Timestamp,
	})
}

func (s *Service) handleStepCompleted(ctx context.Context, event any) error {
	step, ok := event.(*events.StepCompleted)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	return s.deliver(ctx, Notification{
		UserID:     step.UserID,
		WorkflowID: step.WorkflowID,
		Subject:    "HCI-CDS Progress Update",
		Message:    fmt.Sprintf("Step %q is complete. Your journey is %.0f%% done.", step.Step, step.Progress),
		Timestamp:  step.Timestamp,
	})
}

func (s *Service) handleWorkflowCompleted(ctx context.Context, event any) error {
	completed, ok := event.(*events.WorkflowCompleted)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	message := "All steps are complete. Services can begin. Check your email for details."
	if len(completed.Summary.FormsGenerated) > 0 {
		message = fmt.Sprintf("All steps are complete and %d form(s) were generated. Services can begin.",
			len(completed.Summary.FormsGenerated))
	}

	return s.deliver(ctx, Notification{
		UserID:     completed.UserID,
		WorkflowID: completed.WorkflowID,
		Subject:    "HCI-CDS Workflow Complete",
		Message:    message,
		Timestamp:  completed.Timestamp,
	})
}

func (s *Service) handleJourneyFailed(ctx context.Context, event any) error {
	failed, ok := event.(*events.JourneyFailed)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	return s.deliver(ctx, Notification{
		UserID:     failed.UserID,
		WorkflowID: failed.WorkflowID,
		Subject:    "HCI-CDS Assistance Needed",
		Message:    "We hit a problem while processing your journey. Please contact support for assistance.",
		Timestamp:  failed.Timestamp,
	})
}
