package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/nchci/hciflow/pkg/channels/gochannel"
	"github.com/nchci/hciflow/pkg/eventbus"
	"github.com/nchci/hciflow/pkg/events"
	"github.com/nchci/hciflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu   sync.Mutex
	sent []Notification
}

func (c *captureSender) Send(_ context.Context, notification Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sent = append(c.sent, notification)

	return nil
}

func (c *captureSender) wait(t *testing.T, want int) []Notification {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		if len(c.sent) >= want {
			out := append([]Notification(nil), c.sent...)
			c.mu.Unlock()

			return out
		}
		c.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("expected %d notifications", want)

	return nil
}

func testBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestServiceStepCompletedNotification(t *testing.T) {
	bus := testBus(t)
	sender := &captureSender{}
	service := NewService(sender, slog.Default())

	require.NoError(t, service.Register(bus))
	require.NoError(t, bus.Subscribe(t.Context()))

	event := events.StepCompleted{
		BaseEvent: events.NewBaseEvent(events.StepCompletedEvent, "user-1", "participant_onboarding"),
		Step:      "eligibility_check",
		StepIndex: 0,
		AgentID:   "arms_integrator",
		Progress:  33,
	}
	require.NoError(t, bus.Publish(t.Context(), "user-1", event))

	sent := sender.wait(t, 1)
	assert.Equal(t, "HCI-CDS Progress Update", sent[0].Subject)
	assert.Contains(t, sent[0].Message, "eligibility_check")
	assert.Contains(t, sent[0].Message, "33%")
}

func TestServiceWorkflowCompletedNotification(t *testing.T) {
	bus := testBus(t)
	sender := &captureSender{}
	service := NewService(sender, slog.Default())

	require.NoError(t, service.Register(bus))
	require.NoError(t, bus.Subscribe(t.Context()))

	event := events.WorkflowCompleted{
		BaseEvent: events.NewBaseEvent(events.WorkflowCompletedEvent, "user-1", "participant_onboarding"),
		Summary: models.WorkflowSummary{
			WorkflowID:     "participant_onboarding",
			CompletedSteps: 3,
			TotalSteps:     3,
			FormsGenerated: []string{"HCI-PARTICIPANT_ENROLLMENT-abc12345"},
		},
	}
	require.NoError(t, bus.Publish(t.Context(), "user-1", event))

	sent := sender.wait(t, 1)
	assert.Equal(t, "HCI-CDS Workflow Complete", sent[0].Subject)
	assert.Contains(t, sent[0].Message, "1 form(s)")
}

func TestServiceJourneyFailedNotification(t *testing.T) {
	bus := testBus(t)
	sender := &captureSender{}
	service := NewService(sender, slog.Default())

	require.NoError(t, service.Register(bus))
	require.NoError(t, bus.Subscribe(t.Context()))

	event := events.JourneyFailed{
		BaseEvent: events.NewBaseEvent(events.JourneyFailedEvent, "user-1", "participant_onboarding"),
		Stage:     "start_journey",
		Error:     "anthropic api: timeout",
	}
	require.NoError(t, bus.Publish(t.Context(), "user-1", event))

	sent := sender.wait(t, 1)
	assert.Equal(t, "HCI-CDS Assistance Needed", sent[0].Subject)
	assert.Contains(t, sent[0].Message, "contact support")
}

func TestWebhookSender(t *testing.T) {
	var received Notification

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewWebhookSender(server.URL)
	err := sender.Send(t.Context(), Notification{
		UserID:  "user-1",
		Subject: "HCI-CDS Progress Update",
		Message: "Step complete.",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", received.UserID)
}

func TestWebhookSenderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender := NewWebhookSender(server.URL)
	err := sender.Send(t.Context(), Notification{UserID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
