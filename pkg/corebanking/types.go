package corebanking

import "github.com/shopspring/decimal"

// Loan status codes as reported by the core-banking API.
const (
	LoanStatusSubmitted = "SUBMITTED_AND_PENDING_APPROVAL"
	LoanStatusApproved  = "APPROVED"
	LoanStatusDisbursed = "DISBURSED"
	LoanStatusRejected  = "REJECTED"
	LoanStatusWithdrawn = "WITHDRAWN"
	LoanStatusClosed    = "CLOSED"
)

// Code names for reason code values.
const (
	CodeClientRejectReason  = "ClientRejectReason"
	CodeClientClosureReason = "ClientClosureReason"
)

type CreateClientRequest struct {
	OfficeID       int64  `json:"officeId"        validate:"required"`
	FirstName      string `json:"firstname"       validate:"required"`
	LastName       string `json:"lastname"        validate:"required"`
	ExternalID     string `json:"externalId,omitempty"`
	MobileNo       string `json:"mobileNo,omitempty"`
	Active         bool   `json:"active"`
	ActivationDate string `json:"activationDate,omitempty"`
	DateFormat     string `json:"dateFormat,omitempty"`
	Locale         string `json:"locale,omitempty"`
}

// ClientResponse is the common response envelope for client commands.
type ClientResponse struct {
	OfficeID   int64 `json:"officeId"`
	ClientID   int64 `json:"clientId"`
	ResourceID int64 `json:"resourceId"`
}

type TransferProposalRequest struct {
	DestinationOfficeID int64  `json:"destinationOfficeId" validate:"required"`
	TransferDate        string `json:"transferDate,omitempty"`
	Note                string `json:"note,omitempty"`
	DateFormat          string `json:"dateFormat,omitempty"`
	Locale              string `json:"locale,omitempty"`
}

type CreateLoanRequest struct {
	ClientID                        int64           `json:"clientId"                        validate:"required"`
	ProductID                       int64           `json:"productId"                       validate:"required"`
	Principal                       decimal.Decimal `json:"principal"                       validate:"required"`
	LoanTermFrequency               int             `json:"loanTermFrequency"`
	LoanTermFrequencyType           int             `json:"loanTermFrequencyType"`
	NumberOfRepayments              int             `json:"numberOfRepayments"`
	RepaymentEvery                  int             `json:"repaymentEvery"`
	RepaymentFrequencyType          int             `json:"repaymentFrequencyType"`
	InterestRatePerPeriod           decimal.Decimal `json:"interestRatePerPeriod"`
	AmortizationType                int             `json:"amortizationType"                validate:"required"`
	InterestType                    int             `json:"interestType"`
	InterestCalculationPeriodType   int             `json:"interestCalculationPeriodType"   validate:"required"`
	TransactionProcessingStrategyID int64           `json:"transactionProcessingStrategyId" validate:"required"`
	ExpectedDisbursementDate        string          `json:"expectedDisbursementDate,omitempty"`
	SubmittedOnDate                 string          `json:"submittedOnDate,omitempty"`
	LoanType                        string          `json:"loanType,omitempty"`
	DateFormat                      string          `json:"dateFormat,omitempty"`
	Locale                          string          `json:"locale,omitempty"`
}

type LoanResponse struct {
	ClientID   int64 `json:"clientId"`
	LoanID     int64 `json:"loanId"`
	ResourceID int64 `json:"resourceId"`
}

type ApproveLoanRequest struct {
	ApprovedOnDate           string           `json:"approvedOnDate,omitempty"`
	ApprovedLoanAmount       *decimal.Decimal `json:"approvedLoanAmount,omitempty"`
	ExpectedDisbursementDate string           `json:"expectedDisbursementDate,omitempty"`
	Note                     string           `json:"note,omitempty"`
	DateFormat               string           `json:"dateFormat,omitempty"`
	Locale                   string           `json:"locale,omitempty"`
}

type RejectLoanRequest struct {
	RejectedOnDate string `json:"rejectedOnDate,omitempty"`
	Note           string `json:"note,omitempty"`
	DateFormat     string `json:"dateFormat,omitempty"`
	Locale         string `json:"locale,omitempty"`
}

type DisburseLoanRequest struct {
	ActualDisbursementDate string          `json:"actualDisbursementDate,omitempty"`
	TransactionAmount      decimal.Decimal `json:"transactionAmount"`
	Note                   string          `json:"note,omitempty"`
	DateFormat             string          `json:"dateFormat,omitempty"`
	Locale                 string          `json:"locale,omitempty"`
}

// LoanTransactionResponse is the common response envelope for loan commands.
type LoanTransactionResponse struct {
	ClientID   int64 `json:"clientId"`
	LoanID     int64 `json:"loanId"`
	ResourceID int64 `json:"resourceId"`
}

// LoanStatus is the status block of a retrieved loan.
type LoanStatus struct {
	Code   string `json:"code"`
	Active bool   `json:"active"`
}

type LoanCharge struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
}

// Loan is the snapshot returned by GetLoan. Charges keeps the distinction
// between a nil list (none reported) and an empty one (reported but empty);
// the verification engine keys behavior off it.
type Loan struct {
	ID                 int64           `json:"id"`
	ClientID           int64           `json:"clientId"`
	Status             LoanStatus      `json:"status"`
	Principal          decimal.Decimal `json:"principal"`
	ApprovedPrincipal  decimal.Decimal `json:"approvedPrincipal"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	OverdueBalance     decimal.Decimal `json:"overdueBalance"`
	TermFrequency      int             `json:"termFrequency"`
	InterestRate       decimal.Decimal `json:"interestRatePerPeriod"`
	Currency           string          `json:"currencyCode"`
	Charges            []LoanCharge    `json:"charges,omitempty"`
}

type CodeValue struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}
