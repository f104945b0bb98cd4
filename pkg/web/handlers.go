package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/nchci/hciflow/pkg/agent"
	"github.com/nchci/hciflow/pkg/catalog"
	"github.com/nchci/hciflow/pkg/forms"
	"github.com/nchci/hciflow/pkg/orchestrator"
	"github.com/nchci/hciflow/pkg/store"
)

type APIHandlers struct {
	orchestrator *orchestrator.Orchestrator
	catalog      *catalog.Catalog
	engine       *forms.Engine
	store        store.Store
	agents       *agent.Registry
	validator    *validator.Validate
}

func NewAPIHandlers(
	orch *orchestrator.Orchestrator,
	cat *catalog.Catalog,
	engine *forms.Engine,
	st store.Store,
	agents *agent.Registry,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		orchestrator: orch,
		catalog:      cat,
		engine:       engine,
		store:        st,
		agents:       agents,
		validator:    validator,
	}
}

func (h *APIHandlers) StartJourney(c fiber.Ctx) error {
	var req StartJourneyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	result := h.orchestrator.StartJourney(c.Context(), req.UserID, req.Intent, req.Context)
	if !result.Success {
		// The failure shape itself is the contract: the caller always gets
		// an error string plus a fallback suggestion.
		return c.Status(fiber.StatusBadGateway).JSON(result)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *APIHandlers) ExecuteStep(c fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	var req ExecuteStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	outcome, err := h.orchestrator.ExecuteStep(c.Context(), userID, *req.StepIndex)
	if err != nil {
		return handleOrchestratorError(c, err)
	}

	if !outcome.Success {
		return c.Status(fiber.StatusBadGateway).JSON(outcome)
	}

	return c.JSON(outcome)
}

func (h *APIHandlers) CompleteWorkflow(c fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	result, err := h.orchestrator.CompleteWorkflow(c.Context(), userID)
	if err != nil {
		return handleOrchestratorError(c, err)
	}

	return c.JSON(result)
}

func (h *APIHandlers) GetStatus(c fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return badRequest(c, "User ID is required")
	}

	status, err := h.orchestrator.Status(c.Context(), userID)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(status)
}

func (h *APIHandlers) ListIntents(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"intents": h.catalog.Intents()})
}

func (h *APIHandlers) GenerateForm(c fiber.Ctx) error {
	var req GenerateFormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(forms.Generate(req.FormType))
}

func (h *APIHandlers) ValidateForm(c fiber.Ctx) error {
	var req ValidateFormRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(h.engine.Validate(req.FormType, req.Data))
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	storeErr := h.store.HealthCheck(c.Context())
	agentCount := len(h.agents.IDs())

	status := "healthy"
	message := "HCI Flow API is healthy"
	httpStatus := http.StatusOK

	if storeErr != nil || agentCount == 0 {
		status = "unhealthy"
		message = "HCI Flow API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	storeCheck := "ok"
	if storeErr != nil {
		storeCheck = storeErr.Error()
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"store":  storeCheck,
			"agents": agentCount,
		},
		"timestamp": time.Now().UTC(),
	})
}
