package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
	"github.com/nchci/hciflow/pkg/agent"
	"github.com/nchci/hciflow/pkg/orchestrator"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleOrchestratorError maps the orchestrator's named errors to problem
// responses. Anything unexpected stays a 500 without leaking details.
func handleOrchestratorError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrNoActiveWorkflow):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("no_active_workflow").
			WithDetail("no active workflow; start a journey first")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case errors.Is(err, orchestrator.ErrWorkflowCompleted):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("workflow_completed").
			WithDetail("workflow already completed; start a new journey")

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, agent.ErrAgentNotAvailable):
		problem := problems.NewStatusProblem(500).
			WithInstance(c.Path()).
			WithType("agent_not_available").
			WithDetail("required agent is not registered")

		return c.Status(fiber.StatusInternalServerError).JSON(problem)

	default:
		return internalError(c, err)
	}
}
