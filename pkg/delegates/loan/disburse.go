package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/variables"
	"github.com/shopspring/decimal"
)

// DisburseDelegate releases an approved loan's funds. Each invocation is one
// attempt of the retry state machine: a success resets the attempt counter, a
// failure increments it and decides between scheduling a retry and escalating,
// writing the audit trail either way. The amount disbursed is the approved
// amount when present, otherwise the originally requested transaction amount.
type DisburseDelegate struct {
	banking corebanking.Client
}

func (d *DisburseDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "disbursement"

	logger = logger.With("delegate", "disburse_loan")

	state, err := LoadRetryState(bag)
	if err != nil {
		return delegates.Fail(bag, operation, "retryAttempt", err)
	}

	loanID, err := variables.RequiredLong(bag, "loanId")
	if err != nil {
		return d.fail(bag, operation, "loanId", err, &state, logger)
	}

	amount, err := disbursementAmount(bag)
	if err != nil {
		return d.fail(bag, operation, "transactionAmount", err, &state, logger)
	}

	req := corebanking.DisburseLoanRequest{
		ActualDisbursementDate: time.Now().Format(dateLayout),
		TransactionAmount:      amount,
		Note:                   variables.OptionalString(bag, "disbursementNote", ""),
		DateFormat:             "dd MMMM yyyy",
		Locale:                 "en",
	}

	if disbursedOn := variables.DateValue(bag, "actualDisbursementDate", logger); disbursedOn != nil {
		req.ActualDisbursementDate = formatDate(disbursedOn)
	}

	resp, err := d.banking.DisburseLoan(ctx, loanID, req)
	if err != nil {
		return d.fail(bag, operation, fmt.Sprintf("loan %d", loanID), err, &state, logger)
	}

	state.RecordSuccess(bag)

	bag.SetVariable("loanId", resp.LoanID)
	bag.SetVariable("disbursedAmount", amount)
	bag.SetVariable("loanStatus", corebanking.LoanStatusDisbursed)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Loan %d disbursed for %s", resp.LoanID, amount.String()))

	logger.Info("Loan disbursed", "loan_id", resp.LoanID, "amount", amount.String())

	return nil
}

// fail runs the failure transition: the attempt counter advances, the audit
// trail is written, and failures that did not come from the core-banking API
// are wrapped once as a disbursement workflow error before classification.
func (d *DisburseDelegate) fail(bag variables.Bag, operation, param string, cause error, state *RetryState, logger *slog.Logger) error {
	failureType := FailureTypeSystem

	var apiErr *faults.APIError
	if errors.As(cause, &apiErr) {
		failureType = FailureTypeAPI
	}

	shouldRetry := state.RecordFailure(bag, cause, failureType)

	logger.Error("Loan disbursement failed",
		"param", param,
		"attempt", state.Attempt,
		"max_attempts", state.MaxAttempts,
		"should_retry", shouldRetry,
		"failure_type", failureType,
		"error", cause)

	if failureType == FailureTypeSystem && !faults.IsArgumentError(cause) {
		cause = &faults.WorkflowError{
			Op:      operation,
			Code:    faults.ErrorLoanDisbursementFailed,
			Message: fmt.Sprintf("Loan disbursement failed: %v", cause),
			Err:     cause,
		}
	}

	return delegates.Fail(bag, operation, param, cause)
}

// disbursementAmount resolves the amount to transfer: the approved amount
// takes precedence over the requested transaction amount.
func disbursementAmount(bag variables.Bag) (decimal.Decimal, error) {
	approved, err := variables.OptionalDecimal(bag, "approvedAmount", decimal.Zero)
	if err != nil {
		return decimal.Zero, err
	}

	if !approved.IsZero() {
		return approved, nil
	}

	return variables.RequiredDecimal(bag, "transactionAmount")
}

type DisburseFactory struct {
	banking corebanking.Client
}

func NewDisburseFactory(banking corebanking.Client) *DisburseFactory {
	return &DisburseFactory{banking: banking}
}

func (*DisburseFactory) ID() string {
	return "disburseLoan"
}

func (*DisburseFactory) Name() string {
	return "Disburse Loan"
}

func (*DisburseFactory) Description() string {
	return "Releases an approved loan's funds, with retry and escalation bookkeeping."
}

func (*DisburseFactory) Schema() map[string]any {
	return nil
}

func (f *DisburseFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &DisburseDelegate{banking: f.banking}, nil
}
