// Package main runs the notification worker: it consumes journey lifecycle
// events and delivers participant-facing progress updates.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/nchci/hciflow/pkg/cmd"
	"github.com/nchci/hciflow/pkg/log"
	"github.com/nchci/hciflow/pkg/notifications"
	cli "github.com/urfave/cli/v3"
)

func main() {
	logger := log.WithModule("notifier")

	command := &cli.Command{
		Name:                  "hciflow-notifier",
		Usage:                 "Deliver journey progress notifications",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, gochannel)",
				Value:   "kafka",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "webhook-url",
				Usage:   "Webhook endpoint for outbound notifications; logs them when unset",
				Sources: cli.EnvVars("NOTIFY_WEBHOOK_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			eventBus := cmd.NewEventBus(command.String("event-bus"), "hciflow-notifier", logger)
			if eventBus == nil {
				return errors.New("the notifier requires an event bus")
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			var sender notifications.Sender
			if url := command.String("webhook-url"); url != "" {
				sender = notifications.NewWebhookSender(url)
			} else {
				sender = &notifications.LogSender{Logger: logger}
			}

			service := notifications.NewService(sender, logger)
			if err := service.Register(eventBus); err != nil {
				return err
			}

			if err := eventBus.Subscribe(ctx); err != nil {
				return err
			}

			logger.InfoContext(ctx, "Notification worker started")

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()
			logger.Info("Notification worker stopping")

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
