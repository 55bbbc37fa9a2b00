package loan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/variables"
)

// CancelDelegate deletes a loan application that has not been disbursed yet.
type CancelDelegate struct {
	banking corebanking.Client
}

func (d *CancelDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "loanCancellation"

	logger = logger.With("delegate", "cancel_loan")

	loanID, err := variables.RequiredLong(bag, "loanId")
	if err != nil {
		return delegates.Fail(bag, operation, "loanId", err)
	}

	if err := d.banking.DeleteLoan(ctx, loanID); err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("loan %d", loanID), err)
	}

	bag.SetVariable("loanCancelled", true)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Loan %d cancelled", loanID))

	logger.Info("Loan cancelled", "loan_id", loanID)

	return nil
}

type CancelFactory struct {
	banking corebanking.Client
}

func NewCancelFactory(banking corebanking.Client) *CancelFactory {
	return &CancelFactory{banking: banking}
}

func (*CancelFactory) ID() string {
	return "cancelLoan"
}

func (*CancelFactory) Name() string {
	return "Cancel Loan"
}

func (*CancelFactory) Description() string {
	return "Deletes an undisbursed loan application."
}

func (*CancelFactory) Schema() map[string]any {
	return nil
}

func (f *CancelFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &CancelDelegate{banking: f.banking}, nil
}
