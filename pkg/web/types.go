// Package web provides the HTTP request and response types for the process
// API.
package web

import "github.com/lcampos/bankflow/pkg/engine"

// StartProcessRequest starts a process definition with initial variables.
type StartProcessRequest struct {
	ProcessKey string         `json:"process_key" validate:"required"`
	Variables  map[string]any `json:"variables"`
}

// StartProcessResponse reports the id of a started process instance.
type StartProcessResponse struct {
	ProcessID string         `json:"process_id"`
	Variables map[string]any `json:"variables,omitempty"`
}

// CompleteTaskRequest carries the variables submitted with a human task.
type CompleteTaskRequest struct {
	Variables map[string]any `json:"variables"`
}

// TasksResponse lists the human tasks a process instance is waiting on.
type TasksResponse struct {
	ProcessID string        `json:"process_id"`
	Tasks     []engine.Task `json:"tasks"`
}

// OnboardClientRequest is the typed surface over the client onboarding
// process.
type OnboardClientRequest struct {
	FirstName      string `json:"firstname"                 validate:"required,min=1"`
	LastName       string `json:"lastname"                  validate:"required,min=1"`
	OfficeID       int64  `json:"office_id"                 validate:"required,gt=0"`
	ExternalID     string `json:"external_id,omitempty"`
	MobileNo       string `json:"mobile_no,omitempty"`
	StaffID        *int64 `json:"staff_id,omitempty"        validate:"omitempty,gt=0"`
	ActivationDate string `json:"activation_date,omitempty"`
}

// OriginateLoanRequest is the typed surface over the loan origination
// process.
type OriginateLoanRequest struct {
	ClientID                        int64  `json:"client_id"                          validate:"required,gt=0"`
	ProductID                       int64  `json:"product_id"                         validate:"required,gt=0"`
	Principal                       string `json:"principal"                          validate:"required"`
	AmortizationType                int    `json:"amortization_type"                  validate:"required"`
	InterestCalculationPeriodType   int    `json:"interest_calculation_period_type"   validate:"required"`
	TransactionProcessingStrategyID int64  `json:"transaction_processing_strategy_id" validate:"required,gt=0"`
	LoanTermFrequency               int    `json:"loan_term_frequency,omitempty"`
	NumberOfRepayments              int    `json:"number_of_repayments,omitempty"`
	InterestRatePerPeriod           string `json:"interest_rate_per_period,omitempty"`
	AutoRetryOnFailure              bool   `json:"auto_retry_on_failure"`
	MaxRetryAttempts                int    `json:"max_retry_attempts,omitempty"      validate:"omitempty,gt=0"`
}

// DelegateResponse describes one registered delegate type.
type DelegateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
