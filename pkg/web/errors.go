package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/moogar0880/problems"
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

func conflict(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(409).
		WithInstance(c.Path()).
		WithType("invalid_state").
		WithDetail(detail)

	return c.Status(fiber.StatusConflict).JSON(problem)
}

func upstreamError(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(502).
		WithInstance(c.Path()).
		WithType("core_banking_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadGateway).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleDomainError maps the fault taxonomy onto problem responses. The raw
// engine error is classified first so plain-text engine failures get the same
// treatment as already-typed ones.
func handleDomainError(c fiber.Ctx, err error, operation, param string) error {
	classified := faults.Classify(err, operation, param)

	var stateErr *faults.EngineStateError

	switch {
	case faults.IsNotFound(classified):
		return notFound(c, classified.Error())

	case errors.As(classified, &stateErr):
		return conflict(c, classified.Error())

	case faults.IsArgumentError(classified):
		return badRequest(c, classified.Error())

	case faults.IsAPIError(classified):
		return upstreamError(c, classified.Error())

	default:
		return internalError(c, classified)
	}
}
