package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/variables"
)

// RejectDelegate rejects a submitted loan.
type RejectDelegate struct {
	banking corebanking.Client
}

func (d *RejectDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "loanRejection"

	logger = logger.With("delegate", "reject_loan")

	loanID, err := variables.RequiredLong(bag, "loanId")
	if err != nil {
		return delegates.Fail(bag, operation, "loanId", err)
	}

	req := corebanking.RejectLoanRequest{
		RejectedOnDate: time.Now().Format(dateLayout),
		Note:           variables.OptionalString(bag, "rejectionNote", ""),
		DateFormat:     "dd MMMM yyyy",
		Locale:         "en",
	}

	if rejectedOn := variables.DateValue(bag, "rejectedOnDate", logger); rejectedOn != nil {
		req.RejectedOnDate = formatDate(rejectedOn)
	}

	resp, err := d.banking.RejectLoan(ctx, loanID, req)
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("loan %d", loanID), err)
	}

	bag.SetVariable("loanId", resp.LoanID)
	bag.SetVariable("loanStatus", corebanking.LoanStatusRejected)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Loan %d rejected", resp.LoanID))

	logger.Info("Loan rejected", "loan_id", resp.LoanID)

	return nil
}

type RejectFactory struct {
	banking corebanking.Client
}

func NewRejectFactory(banking corebanking.Client) *RejectFactory {
	return &RejectFactory{banking: banking}
}

func (*RejectFactory) ID() string {
	return "rejectLoan"
}

func (*RejectFactory) Name() string {
	return "Reject Loan"
}

func (*RejectFactory) Description() string {
	return "Rejects a submitted loan application."
}

func (*RejectFactory) Schema() map[string]any {
	return nil
}

func (f *RejectFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &RejectDelegate{banking: f.banking}, nil
}
