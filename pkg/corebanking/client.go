// Package corebanking defines the typed surface of the external core-banking
// REST API consumed by the task delegates, one call per business action.
// Failures are reported as *faults.APIError; no call is retried or cached
// here — retry policy is an explicit state transition owned by the
// disbursement delegate and re-driven by the workflow engine.
package corebanking

import "context"

type Client interface {
	// Client lifecycle.
	CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error)
	ActivateClient(ctx context.Context, clientID int64, activationDate string) (*ClientResponse, error)
	CloseClient(ctx context.Context, clientID, closureReasonID int64, closureDate string) (*ClientResponse, error)
	RejectClient(ctx context.Context, clientID, rejectionReasonID int64, rejectionDate string) (*ClientResponse, error)
	AssignStaff(ctx context.Context, clientID, staffID int64) (*ClientResponse, error)

	// Client transfers between offices.
	ProposeTransfer(ctx context.Context, clientID int64, req TransferProposalRequest) (*ClientResponse, error)
	AcceptTransfer(ctx context.Context, clientID int64, note string) (*ClientResponse, error)
	RejectTransfer(ctx context.Context, clientID int64, note string) (*ClientResponse, error)

	// Loan lifecycle.
	CreateLoan(ctx context.Context, req CreateLoanRequest) (*LoanResponse, error)
	ApproveLoan(ctx context.Context, loanID int64, req ApproveLoanRequest) (*LoanTransactionResponse, error)
	RejectLoan(ctx context.Context, loanID int64, req RejectLoanRequest) (*LoanTransactionResponse, error)
	DisburseLoan(ctx context.Context, loanID int64, req DisburseLoanRequest) (*LoanTransactionResponse, error)
	DeleteLoan(ctx context.Context, loanID int64) error
	GetLoan(ctx context.Context, loanID int64) (*Loan, error)

	// Reason code values used by rejection and closure delegates.
	GetCodeValues(ctx context.Context, codeName string) ([]CodeValue, error)
	CreateCodeValue(ctx context.Context, codeName, name string) (*CodeValue, error)
}
