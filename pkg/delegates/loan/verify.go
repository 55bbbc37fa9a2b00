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

// VerifyDelegate retrieves a loan snapshot and runs the disbursement
// readiness rules over it, writing the full verification result into the bag
// for gateway decisions downstream.
type VerifyDelegate struct {
	banking corebanking.Client
}

func (d *VerifyDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "verification"

	logger = logger.With("delegate", "verify_loan_status")

	loanID, err := variables.RequiredLong(bag, "loanId")
	if err != nil {
		return delegates.Fail(bag, operation, "loanId", err)
	}

	requested, err := variables.OptionalDecimal(bag, "requestedAmount", decimal.Zero)
	if err != nil {
		return delegates.Fail(bag, operation, "requestedAmount", err)
	}

	snapshot, err := d.banking.GetLoan(ctx, loanID)
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("loan %d", loanID), err)
	}

	result := Evaluate(snapshot, requested)

	bag.SetVariable("loanStatus", snapshot.Status.Code)
	bag.SetVariable("loanApproved", result.Approved)
	bag.SetVariable("loanDisbursed", result.Disbursed)
	bag.SetVariable("loanActive", result.Active)
	bag.SetVariable("readyForDisbursement", result.ReadyForDisbursement)
	bag.SetVariable("statusMessage", result.StatusMessage)
	bag.SetVariable("verificationIssues", result.IssueMessages())
	bag.SetVariable("blockingIssues", result.BlockingIssues())
	bag.SetVariable("riskLevel", result.RiskLevel)
	bag.SetVariable("approvalLevel", result.ApprovalLevel)
	bag.SetVariable("complianceCheckRequired", result.ComplianceCheckRequired)
	bag.SetVariable("escalationRequired", result.EscalationRequired)

	delegates.MarkSuccess(bag, operation, result.StatusMessage)

	logger.Info("Loan status verified",
		"loan_id", loanID,
		"status", snapshot.Status.Code,
		"ready", result.ReadyForDisbursement,
		"risk_level", result.RiskLevel,
		"approval_level", result.ApprovalLevel,
		"issues", len(result.Issues))

	return nil
}

type VerifyFactory struct {
	banking corebanking.Client
}

func NewVerifyFactory(banking corebanking.Client) *VerifyFactory {
	return &VerifyFactory{banking: banking}
}

func (*VerifyFactory) ID() string {
	return "verifyLoanStatus"
}

func (*VerifyFactory) Name() string {
	return "Verify Loan Status"
}

func (*VerifyFactory) Description() string {
	return "Evaluates a loan snapshot for disbursement readiness, risk tier and approval authority."
}

func (*VerifyFactory) Schema() map[string]any {
	return nil
}

func (f *VerifyFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &VerifyDelegate{banking: f.banking}, nil
}
