package loan

import (
	"fmt"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/shopspring/decimal"
)

// Risk tiers assigned by the verification rules.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Approval tiers assigned by the verification rules.
const (
	ApprovalOfficer       = "OFFICER"
	ApprovalManager       = "MANAGER"
	ApprovalSeniorManager = "SENIOR_MANAGER"
)

var (
	riskHighThreshold      = decimal.NewFromInt(500_000)
	riskMediumThreshold    = decimal.NewFromInt(100_000)
	complianceThreshold    = decimal.NewFromInt(1_000_000)
	seniorManagerThreshold = decimal.NewFromInt(1_000_000)
	managerAmountThreshold = decimal.NewFromInt(500_000)
)

// Issue is one human-readable finding from the verification rules. Blocking
// reflects whether the loan was already not ready for disbursement when the
// issue was recorded.
type Issue struct {
	Message  string
	Blocking bool
}

// VerificationResult is the outcome of evaluating a loan snapshot against the
// disbursement readiness rules.
type VerificationResult struct {
	Approved  bool
	Disbursed bool
	Active    bool
	Rejected  bool
	Withdrawn bool

	ReadyForDisbursement    bool
	StatusMessage           string
	Issues                  []Issue
	RiskLevel               string
	ApprovalLevel           string
	ComplianceCheckRequired bool
	EscalationRequired      bool

	Principal          decimal.Decimal
	RequestedAmount    decimal.Decimal
	OutstandingBalance decimal.Decimal
	Currency           string
}

// IssueMessages returns the issue messages in evaluation order.
func (r *VerificationResult) IssueMessages() []string {
	msgs := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		msgs = append(msgs, issue.Message)
	}

	return msgs
}

// BlockingIssues returns the messages of issues recorded while the loan was
// not ready for disbursement.
func (r *VerificationResult) BlockingIssues() []string {
	var msgs []string

	for _, issue := range r.Issues {
		if issue.Blocking {
			msgs = append(msgs, issue.Message)
		}
	}

	return msgs
}

// Evaluate runs the disbursement readiness rules against a loan snapshot.
// requested is the amount the process asked to disburse; when the process did
// not supply one the principal stands in for it. Status rules run in fixed
// order and the first applicable one decides the status message; amount,
// charge and balance checks then append their own issues without changing
// readiness. Evaluation is pure: the same snapshot always yields the same
// result.
func Evaluate(snapshot *corebanking.Loan, requested decimal.Decimal) *VerificationResult {
	status := snapshot.Status

	result := &VerificationResult{
		Approved:  status.Code == corebanking.LoanStatusApproved,
		Disbursed: status.Code == corebanking.LoanStatusDisbursed,
		Active:    status.Active,
		Rejected:  status.Code == corebanking.LoanStatusRejected,
		Withdrawn: status.Code == corebanking.LoanStatusWithdrawn,

		Principal:          snapshot.Principal,
		OutstandingBalance: snapshot.OutstandingBalance,
		Currency:           snapshot.Currency,
	}

	if requested.IsZero() {
		requested = snapshot.Principal
	}

	result.RequestedAmount = requested

	switch {
	case result.Approved && !result.Disbursed && result.Active && !result.Rejected && !result.Withdrawn:
		result.ReadyForDisbursement = true
		result.StatusMessage = "ready for disbursement"
	case result.Disbursed:
		result.StatusMessage = "Loan has already been disbursed"
		result.addIssue(result.StatusMessage)
	case !result.Approved:
		result.StatusMessage = fmt.Sprintf("Loan is not approved, current status is %s", status.Code)
		result.addIssue(result.StatusMessage)
	case result.Rejected:
		result.StatusMessage = "Loan has been rejected"
		result.addIssue(result.StatusMessage)
	case result.Withdrawn:
		result.StatusMessage = "Loan has been withdrawn"
		result.addIssue(result.StatusMessage)
	default:
		result.StatusMessage = "Loan status is not suitable for disbursement"
		result.addIssue(result.StatusMessage)
	}

	approvedPrincipal := snapshot.ApprovedPrincipal
	if approvedPrincipal.IsZero() {
		approvedPrincipal = snapshot.Principal
	}

	if requested.GreaterThan(approvedPrincipal) {
		result.addIssue(fmt.Sprintf("Requested amount %s exceeds approved principal %s",
			requested.String(), approvedPrincipal.String()))
	}

	// A non-nil charge list counts as pending charges even when it is empty.
	// That matches the long-standing convention downstream processes depend
	// on; do not tighten it to len > 0 without product sign-off.
	if snapshot.Charges != nil {
		result.addIssue("Loan has pending charges")
	}

	if snapshot.OverdueBalance.GreaterThan(decimal.Zero) {
		result.addIssue(fmt.Sprintf("Loan has an overdue balance of %s", snapshot.OverdueBalance.String()))
	}

	if snapshot.TermFrequency <= 0 {
		result.addIssue("Loan term frequency is not positive")
	}

	if snapshot.InterestRate.LessThan(decimal.Zero) {
		result.addIssue("Loan interest rate is negative")
	}

	switch {
	case snapshot.Principal.GreaterThan(riskHighThreshold):
		result.RiskLevel = RiskHigh
	case snapshot.Principal.GreaterThan(riskMediumThreshold):
		result.RiskLevel = RiskMedium
	default:
		result.RiskLevel = RiskLow
	}

	result.ComplianceCheckRequired = result.RiskLevel == RiskHigh || requested.GreaterThan(complianceThreshold)

	switch {
	case requested.GreaterThan(seniorManagerThreshold):
		result.ApprovalLevel = ApprovalSeniorManager
	case requested.GreaterThan(managerAmountThreshold):
		result.ApprovalLevel = ApprovalManager
	default:
		result.ApprovalLevel = ApprovalOfficer
	}

	result.EscalationRequired = result.RiskLevel == RiskHigh || result.ApprovalLevel == ApprovalSeniorManager

	return result
}

func (r *VerificationResult) addIssue(message string) {
	r.Issues = append(r.Issues, Issue{Message: message, Blocking: !r.ReadyForDisbursement})
}
