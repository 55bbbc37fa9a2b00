package loan

import (
	"testing"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedLoan(principal int64) *corebanking.Loan {
	return &corebanking.Loan{
		ID:                1,
		ClientID:          10,
		Status:            corebanking.LoanStatus{Code: corebanking.LoanStatusApproved, Active: true},
		Principal:         decimal.NewFromInt(principal),
		ApprovedPrincipal: decimal.NewFromInt(principal),
		TermFrequency:     12,
		InterestRate:      decimal.NewFromFloat(5.5),
		Currency:          "USD",
	}
}

func TestEvaluate_HighRiskApprovedLoan(t *testing.T) {
	result := Evaluate(approvedLoan(600_000), decimal.Zero)

	assert.True(t, result.ReadyForDisbursement)
	assert.Equal(t, "ready for disbursement", result.StatusMessage)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	assert.True(t, result.ComplianceCheckRequired)
	assert.Equal(t, ApprovalManager, result.ApprovalLevel)
	assert.True(t, result.EscalationRequired)
	assert.Empty(t, result.Issues)
}

func TestEvaluate_AlreadyDisbursed(t *testing.T) {
	loan := approvedLoan(50_000)
	loan.Status = corebanking.LoanStatus{Code: corebanking.LoanStatusDisbursed, Active: true}

	result := Evaluate(loan, decimal.Zero)

	assert.False(t, result.ReadyForDisbursement)
	assert.Equal(t, []string{"Loan has already been disbursed"}, result.IssueMessages())
	assert.Equal(t, []string{"Loan has already been disbursed"}, result.BlockingIssues())
}

func TestEvaluate_StatusMessagePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		status  corebanking.LoanStatus
		message string
	}{
		{
			name:    "submitted loan is reported as not approved",
			status:  corebanking.LoanStatus{Code: corebanking.LoanStatusSubmitted, Active: true},
			message: "Loan is not approved, current status is SUBMITTED_AND_PENDING_APPROVAL",
		},
		{
			name:    "rejected loan is reported as not approved first",
			status:  corebanking.LoanStatus{Code: corebanking.LoanStatusRejected, Active: false},
			message: "Loan is not approved, current status is REJECTED",
		},
		{
			name:    "approved but inactive falls through to the generic message",
			status:  corebanking.LoanStatus{Code: corebanking.LoanStatusApproved, Active: false},
			message: "Loan status is not suitable for disbursement",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := approvedLoan(50_000)
			loan.Status = tt.status

			result := Evaluate(loan, decimal.Zero)

			assert.False(t, result.ReadyForDisbursement)
			assert.Equal(t, tt.message, result.StatusMessage)
		})
	}
}

func TestEvaluate_RiskAndApprovalTiers(t *testing.T) {
	tests := []struct {
		name       string
		principal  int64
		requested  int64
		risk       string
		approval   string
		compliance bool
	}{
		{name: "small loan", principal: 50_000, risk: RiskLow, approval: ApprovalOfficer},
		{name: "medium loan", principal: 200_000, risk: RiskMedium, approval: ApprovalOfficer},
		{name: "large loan", principal: 600_000, risk: RiskHigh, approval: ApprovalManager, compliance: true},
		{
			name: "requested above one million", principal: 400_000, requested: 1_200_000,
			risk: RiskMedium, approval: ApprovalSeniorManager, compliance: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requested := decimal.Zero
			if tt.requested != 0 {
				requested = decimal.NewFromInt(tt.requested)
			}

			result := Evaluate(approvedLoan(tt.principal), requested)

			assert.Equal(t, tt.risk, result.RiskLevel)
			assert.Equal(t, tt.approval, result.ApprovalLevel)
			assert.Equal(t, tt.compliance, result.ComplianceCheckRequired)
		})
	}
}

// A reported-but-empty charge list is still flagged as pending charges. That
// looks like it was meant to be a non-empty check, but downstream processes
// have relied on the stricter behavior for years; keep it until product
// clarifies otherwise.
func TestEvaluate_EmptyChargeListStillFlagged(t *testing.T) {
	loan := approvedLoan(50_000)
	loan.Charges = []corebanking.LoanCharge{}

	result := Evaluate(loan, decimal.Zero)

	assert.True(t, result.ReadyForDisbursement, "the charge issue does not flip readiness")
	assert.Contains(t, result.IssueMessages(), "Loan has pending charges")
	assert.Empty(t, result.BlockingIssues(), "issues recorded while ready are not blocking")

	loan.Charges = nil
	result = Evaluate(loan, decimal.Zero)
	assert.NotContains(t, result.IssueMessages(), "Loan has pending charges")
}

func TestEvaluate_AdditionalIssues(t *testing.T) {
	loan := approvedLoan(50_000)
	loan.OverdueBalance = decimal.NewFromInt(150)
	loan.TermFrequency = 0
	loan.InterestRate = decimal.NewFromInt(-1)

	result := Evaluate(loan, decimal.NewFromInt(60_000))

	require.True(t, result.ReadyForDisbursement)
	assert.Equal(t, []string{
		"Requested amount 60000 exceeds approved principal 50000",
		"Loan has an overdue balance of 150",
		"Loan term frequency is not positive",
		"Loan interest rate is negative",
	}, result.IssueMessages())
	assert.Empty(t, result.BlockingIssues())
}

func TestEvaluate_RequestedAmountDefaultsToPrincipal(t *testing.T) {
	result := Evaluate(approvedLoan(1_500_000), decimal.Zero)

	assert.Equal(t, ApprovalSeniorManager, result.ApprovalLevel)
	assert.True(t, result.ComplianceCheckRequired)
	assert.True(t, result.EscalationRequired)
	assert.Equal(t, "1500000", result.RequestedAmount.String())
}

func TestEvaluate_Deterministic(t *testing.T) {
	loan := approvedLoan(600_000)
	loan.Charges = []corebanking.LoanCharge{}

	first := Evaluate(loan, decimal.Zero)
	second := Evaluate(loan, decimal.Zero)

	assert.Equal(t, first.ReadyForDisbursement, second.ReadyForDisbursement)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.ApprovalLevel, second.ApprovalLevel)
	assert.Equal(t, first.IssueMessages(), second.IssueMessages())
}
