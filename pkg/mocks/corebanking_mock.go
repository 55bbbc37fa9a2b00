// Package mocks provides testify mocks for the external collaborators.
package mocks

import (
	"context"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/stretchr/testify/mock"
)

// MockCoreBankingClient is a mock implementation of corebanking.Client.
type MockCoreBankingClient struct {
	mock.Mock
}

func (m *MockCoreBankingClient) CreateClient(ctx context.Context, req corebanking.CreateClientRequest) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) ActivateClient(ctx context.Context, clientID int64, activationDate string) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, clientID, activationDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) CloseClient(ctx context.Context, clientID, closureReasonID int64, closureDate string) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, clientID, closureReasonID, closureDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) RejectClient(ctx context.Context, clientID, rejectionReasonID int64, rejectionDate string) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, clientID, rejectionReasonID, rejectionDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) AssignStaff(ctx context.Context, clientID, staffID int64) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, clientID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) ProposeTransfer(ctx context.Context, clientID int64, req corebanking.TransferProposalRequest) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) AcceptTransfer(ctx context.Context, clientID int64, note string) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, clientID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) RejectTransfer(ctx context.Context, clientID int64, note string) (*corebanking.ClientResponse, error) {
	args := m.Called(ctx, clientID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.ClientResponse), args.Error(1)
}

func (m *MockCoreBankingClient) CreateLoan(ctx context.Context, req corebanking.CreateLoanRequest) (*corebanking.LoanResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.LoanResponse), args.Error(1)
}

func (m *MockCoreBankingClient) ApproveLoan(ctx context.Context, loanID int64, req corebanking.ApproveLoanRequest) (*corebanking.LoanTransactionResponse, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.LoanTransactionResponse), args.Error(1)
}

func (m *MockCoreBankingClient) RejectLoan(ctx context.Context, loanID int64, req corebanking.RejectLoanRequest) (*corebanking.LoanTransactionResponse, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.LoanTransactionResponse), args.Error(1)
}

func (m *MockCoreBankingClient) DisburseLoan(ctx context.Context, loanID int64, req corebanking.DisburseLoanRequest) (*corebanking.LoanTransactionResponse, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.LoanTransactionResponse), args.Error(1)
}

func (m *MockCoreBankingClient) DeleteLoan(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)

	return args.Error(0)
}

func (m *MockCoreBankingClient) GetLoan(ctx context.Context, loanID int64) (*corebanking.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.Loan), args.Error(1)
}

func (m *MockCoreBankingClient) GetCodeValues(ctx context.Context, codeName string) ([]corebanking.CodeValue, error) {
	args := m.Called(ctx, codeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]corebanking.CodeValue), args.Error(1)
}

func (m *MockCoreBankingClient) CreateCodeValue(ctx context.Context, codeName, name string) (*corebanking.CodeValue, error) {
	args := m.Called(ctx, codeName, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*corebanking.CodeValue), args.Error(1)
}
