// Package web provides the HTTP handlers of the process API: starting
// processes, inspecting their variables, and completing human tasks.
package web

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/registry"
)

// Process definition keys exposed by the typed endpoints.
const (
	ProcessClientOnboarding = "clientOnboarding"
	ProcessLoanOrigination  = "loanOrigination"
)

type APIHandlers struct {
	engine    engine.Engine
	registry  *registry.Registry
	validator *validator.Validate
	logger    *slog.Logger
}

func NewAPIHandlers(eng engine.Engine, reg *registry.Registry, validate *validator.Validate, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		engine:    eng,
		registry:  reg,
		validator: validate,
		logger:    logger.With("module", "web"),
	}
}

func (h *APIHandlers) StartProcess(c fiber.Ctx) error {
	var req StartProcessRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	processID, err := h.engine.StartProcess(c.Context(), req.ProcessKey, req.Variables)
	if err != nil {
		return h.startProcessFailure(c, processID, req.ProcessKey, err)
	}

	vars, varsErr := h.engine.Variables(c.Context(), processID)
	if varsErr != nil {
		h.logger.Warn("Failed to read variables of started process", "process_id", processID, "error", varsErr)
	}

	return c.Status(fiber.StatusCreated).JSON(StartProcessResponse{ProcessID: processID, Variables: vars})
}

// startProcessFailure reports a failed start. When the process instance was
// created before a step failed its id and variables are still returned, so
// callers can read the failure audit trail out of the bag.
func (h *APIHandlers) startProcessFailure(c fiber.Ctx, processID, processKey string, cause error) error {
	if processID == "" {
		return handleDomainError(c, cause, "startProcess", processKey)
	}

	vars, varsErr := h.engine.Variables(c.Context(), processID)
	if varsErr != nil {
		return handleDomainError(c, cause, "startProcess", processKey)
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"process_id": processID,
		"error":      cause.Error(),
		"variables":  vars,
	})
}

func (h *APIHandlers) GetVariables(c fiber.Ctx) error {
	processID := c.Params("id")

	vars, err := h.engine.Variables(c.Context(), processID)
	if err != nil {
		return handleDomainError(c, err, "getVariables", processID)
	}

	return c.JSON(fiber.Map{"process_id": processID, "variables": vars})
}

func (h *APIHandlers) TerminateProcess(c fiber.Ctx) error {
	processID := c.Params("id")

	err := h.engine.TerminateProcess(c.Context(), processID)
	if err != nil {
		return handleDomainError(c, err, "terminateProcess", processID)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ListTasks(c fiber.Ctx) error {
	processID := c.Params("id")

	tasks, err := h.engine.ListTasks(c.Context(), processID)
	if err != nil {
		return handleDomainError(c, err, "listTasks", processID)
	}

	return c.JSON(TasksResponse{ProcessID: processID, Tasks: tasks})
}

func (h *APIHandlers) CompleteTask(c fiber.Ctx) error {
	taskID := c.Params("id")

	var req CompleteTaskRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	err := h.engine.CompleteTask(c.Context(), taskID, req.Variables)
	if err != nil {
		return handleDomainError(c, err, "completeTask", taskID)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) ListDelegates(c fiber.Ctx) error {
	ids := h.registry.IDs()
	delegates := make([]DelegateResponse, 0, len(ids))

	for _, id := range ids {
		factory, ok := h.registry.Get(id)
		if !ok {
			continue
		}

		delegates = append(delegates, DelegateResponse{
			ID:          factory.ID(),
			Name:        factory.Name(),
			Description: factory.Description(),
		})
	}

	return c.JSON(delegates)
}

func (h *APIHandlers) OnboardClient(c fiber.Ctx) error {
	var req OnboardClientRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	vars := map[string]any{
		"firstname": req.FirstName,
		"lastname":  req.LastName,
		"officeId":  req.OfficeID,
	}

	if req.ExternalID != "" {
		vars["externalId"] = req.ExternalID
	}

	if req.MobileNo != "" {
		vars["mobileNo"] = req.MobileNo
	}

	if req.StaffID != nil {
		vars["staffId"] = *req.StaffID
	}

	if req.ActivationDate != "" {
		vars["activationDate"] = req.ActivationDate
	}

	processID, err := h.engine.StartProcess(c.Context(), ProcessClientOnboarding, vars)
	if err != nil {
		return h.startProcessFailure(c, processID, ProcessClientOnboarding, err)
	}

	resultVars, varsErr := h.engine.Variables(c.Context(), processID)
	if varsErr != nil {
		h.logger.Warn("Failed to read variables of started process", "process_id", processID, "error", varsErr)
	}

	return c.Status(fiber.StatusCreated).JSON(StartProcessResponse{ProcessID: processID, Variables: resultVars})
}

func (h *APIHandlers) OriginateLoan(c fiber.Ctx) error {
	var req OriginateLoanRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	vars := map[string]any{
		"clientId":                        req.ClientID,
		"productId":                       req.ProductID,
		"principal":                       req.Principal,
		"amortizationType":                req.AmortizationType,
		"interestCalculationPeriodType":   req.InterestCalculationPeriodType,
		"transactionProcessingStrategyId": req.TransactionProcessingStrategyID,
		"autoRetryOnFailure":              req.AutoRetryOnFailure,
	}

	if req.LoanTermFrequency > 0 {
		vars["loanTermFrequency"] = req.LoanTermFrequency
	}

	if req.NumberOfRepayments > 0 {
		vars["numberOfRepayments"] = req.NumberOfRepayments
	}

	if req.InterestRatePerPeriod != "" {
		vars["interestRatePerPeriod"] = req.InterestRatePerPeriod
	}

	if req.MaxRetryAttempts > 0 {
		vars["maxRetryAttempts"] = req.MaxRetryAttempts
	}

	processID, err := h.engine.StartProcess(c.Context(), ProcessLoanOrigination, vars)
	if err != nil {
		return h.startProcessFailure(c, processID, ProcessLoanOrigination, err)
	}

	resultVars, varsErr := h.engine.Variables(c.Context(), processID)
	if varsErr != nil {
		h.logger.Warn("Failed to read variables of started process", "process_id", processID, "error", varsErr)
	}

	return c.Status(fiber.StatusCreated).JSON(StartProcessResponse{ProcessID: processID, Variables: resultVars})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
