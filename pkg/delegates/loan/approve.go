package loan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/variables"
	"github.com/shopspring/decimal"
)

// ApproveDelegate approves a submitted loan, recording the approved amount
// for the disbursement step.
type ApproveDelegate struct {
	banking corebanking.Client
}

func (d *ApproveDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "loanApproval"

	logger = logger.With("delegate", "approve_loan")

	loanID, err := variables.RequiredLong(bag, "loanId")
	if err != nil {
		return delegates.Fail(bag, operation, "loanId", err)
	}

	req := corebanking.ApproveLoanRequest{
		Note:       variables.OptionalString(bag, "approvalNote", ""),
		DateFormat: "dd MMMM yyyy",
		Locale:     "en",
	}

	if approvedOn := variables.DateValue(bag, "approvedOnDate", logger); approvedOn != nil {
		req.ApprovedOnDate = formatDate(approvedOn)
	}

	approvedAmount, err := variables.OptionalDecimal(bag, "approvedAmount", decimal.Zero)
	if err != nil {
		return delegates.Fail(bag, operation, "approvedAmount", err)
	}

	if !approvedAmount.IsZero() {
		req.ApprovedLoanAmount = &approvedAmount
	}

	resp, err := d.banking.ApproveLoan(ctx, loanID, req)
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("loan %d", loanID), err)
	}

	bag.SetVariable("loanId", resp.LoanID)
	if !approvedAmount.IsZero() {
		bag.SetVariable("approvedAmount", approvedAmount)
	}

	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Loan %d approved", resp.LoanID))

	logger.Info("Loan approved", "loan_id", resp.LoanID)

	return nil
}

type ApproveFactory struct {
	banking corebanking.Client
}

func NewApproveFactory(banking corebanking.Client) *ApproveFactory {
	return &ApproveFactory{banking: banking}
}

func (*ApproveFactory) ID() string {
	return "approveLoan"
}

func (*ApproveFactory) Name() string {
	return "Approve Loan"
}

func (*ApproveFactory) Description() string {
	return "Approves a submitted loan and records the approved amount."
}

func (*ApproveFactory) Schema() map[string]any {
	return nil
}

func (f *ApproveFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &ApproveDelegate{banking: f.banking}, nil
}
