package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/nchci/hciflow/pkg/channels/gochannel"
	"github.com/nchci/hciflow/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillEventBusRoundTrip(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	received := make(chan *events.StepCompleted, 1)

	err = bus.Handle(events.StepCompletedEvent, func(_ context.Context, event any) error {
		step, ok := event.(*events.StepCompleted)
		if ok {
			received <- step
		}

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(t.Context()))

	sent := events.StepCompleted{
		BaseEvent: events.NewBaseEvent(events.StepCompletedEvent, "user-1", "participant_onboarding"),
		Step:      "form_generation",
		StepIndex: 1,
		AgentID:   "forms_specialist",
		Progress:  66.67,
	}

	require.NoError(t, bus.Publish(t.Context(), "user-1", sent))

	select {
	case got := <-received:
		assert.Equal(t, "form_generation", got.Step)
		assert.Equal(t, "forms_specialist", got.AgentID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventBusIgnoresUnhandledTypes(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	require.NoError(t, bus.Subscribe(t.Context()))

	event := events.JourneyStarted{
		BaseEvent: events.NewBaseEvent(events.JourneyStartedEvent, "user-1", "participant_onboarding"),
		Intent:    "participant_onboarding",
	}

	// No handler registered; publish must still succeed and the message
	// gets acked.
	assert.NoError(t, bus.Publish(t.Context(), "user-1", event))
}

func TestGenerateID(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	assert.NotEqual(t, bus.GenerateID(), bus.GenerateID())
}
