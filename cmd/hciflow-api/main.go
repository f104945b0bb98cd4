package main

import (
	"context"
	"os"
	"time"

	"github.com/nchci/hciflow/pkg/agent"
	"github.com/nchci/hciflow/pkg/arms"
	"github.com/nchci/hciflow/pkg/catalog"
	"github.com/nchci/hciflow/pkg/cmd"
	"github.com/nchci/hciflow/pkg/forms"
	"github.com/nchci/hciflow/pkg/log"
	"github.com/nchci/hciflow/pkg/orchestrator"
	"github.com/nchci/hciflow/pkg/otelhelper"
	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"
)

const defaultPort = 8080

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "hciflow-api",
		Usage:                 "Guide HCI-CDS participants through program workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "store-url",
				Usage:   "Session store URL (memory or redis://...)",
				Value:   "memory",
				Sources: cli.EnvVars("STORE_URL"),
			},
			&cli.DurationFlag{
				Name:    "session-ttl",
				Usage:   "How long abandoned journeys are retained",
				Value:   24 * time.Hour,
				Sources: cli.EnvVars("SESSION_TTL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, gochannel, none)",
				Value:   "none",
				Sources: cli.EnvVars("EVENT_BUS"),
			},
			&cli.StringFlag{
				Name:    "llm-provider",
				Usage:   "Model provider (anthropic, ollama)",
				Value:   "anthropic",
				Sources: cli.EnvVars("LLM_PROVIDER"),
			},
			&cli.StringFlag{
				Name:    "anthropic-api-key",
				Usage:   "API key for the Anthropic endpoint",
				Sources: cli.EnvVars("ANTHROPIC_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "ollama-url",
				Usage:   "Base URL of a local Ollama endpoint",
				Value:   "http://localhost:11434",
				Sources: cli.EnvVars("OLLAMA_URL"),
			},
			&cli.StringFlag{
				Name:    "arms-endpoint",
				Usage:   "Base URL of the ARMS integration API",
				Sources: cli.EnvVars("ARMS_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:    "arms-api-key",
				Usage:   "API key for the ARMS integration API",
				Sources: cli.EnvVars("ARMS_API_KEY"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export OTLP traces for journey operations",
				Sources: cli.EnvVars("TRACING_ENABLED"),
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

			logger.InfoContext(ctx, "Initializing HCI Flow API")

			llmClient, err := cmd.NewLLMClient(
				command.String("llm-provider"),
				command.String("anthropic-api-key"),
				command.String("ollama-url"),
			)
			if err != nil {
				return err
			}

			armsClient := arms.NewClient(
				command.String("arms-endpoint"),
				command.String("arms-api-key"),
				logger,
			)

			engine := forms.NewEngine(logger)
			tools := agent.DefaultToolSet(armsClient, engine, logger)
			registry := agent.InitializeDefault(llmClient, tools, logger)

			sessionStore := cmd.NewStore(command.String("store-url"), command.Duration("session-ttl"))
			defer func() {
				if err := sessionStore.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close store", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), "hciflow-api", logger)
			if eventBus != nil {
				defer func() {
					if err := eventBus.Close(); err != nil {
						logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
					}
				}()
			}

			var tracer trace.Tracer
			if command.Bool("tracing") {
				tracer, err = otelhelper.NewTracer(ctx, "hciflow-api")
				if err != nil {
					return err
				}
			}

			cat := catalog.New(logger)
			orch := orchestrator.New(cat, registry, sessionStore, eventBus, tracer, logger)

			api := NewAPI(logger, orch, cat, engine, sessionStore, registry)

			return api.Start(command.Int("port"))
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
