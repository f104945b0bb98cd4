// Package main provides the HCI Flow API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/nchci/hciflow/pkg/agent"
	"github.com/nchci/hciflow/pkg/catalog"
	"github.com/nchci/hciflow/pkg/forms"
	"github.com/nchci/hciflow/pkg/orchestrator"
	"github.com/nchci/hciflow/pkg/store"
	"github.com/nchci/hciflow/pkg/web"
)

type API struct {
	logger       *slog.Logger
	orchestrator *orchestrator.Orchestrator
	catalog      *catalog.Catalog
	engine       *forms.Engine
	store        store.Store
	registry     *agent.Registry
	validate     *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	orch *orchestrator.Orchestrator,
	cat *catalog.Catalog,
	engine *forms.Engine,
	st store.Store,
	registry *agent.Registry,
) *API {
	return &API{
		logger:       logger,
		orchestrator: orch,
		catalog:      cat,
		engine:       engine,
		store:        st,
		registry:     registry,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.orchestrator, a.catalog, a.engine, a.store, a.registry, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("HCI Flow API")
	})

	j := app.Group("/journeys")
	j.Post("/", handlers.StartJourney)
	j.Post("/:userID/steps", handlers.ExecuteStep)
	j.Post("/:userID/complete", handlers.CompleteWorkflow)
	j.Get("/:userID", handlers.GetStatus)

	f := app.Group("/forms")
	f.Post("/generate", handlers.GenerateForm)
	f.Post("/validate", handlers.ValidateForm)

	app.Get("/intents", handlers.ListIntents)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
