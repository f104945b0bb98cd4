// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/nchci/hciflow/pkg/channels/gochannel"
	"github.com/nchci/hciflow/pkg/channels/kafka"
	"github.com/nchci/hciflow/pkg/eventbus"
)

// NewEventBus builds the journey event bus for the given provider. Provider
// "none" returns nil, which the orchestrator treats as events disabled.
func NewEventBus(provider, serviceName string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), serviceName)
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	case "gochannel":
		pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			panic(fmt.Errorf("failed to create GoChannel pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	case "none", "":
		return nil
	default:
		panic("Unsupported event bus provider: " + provider)
	}
}
