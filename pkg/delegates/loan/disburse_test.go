package loan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/mocks"
	"github.com/lcampos/bankflow/pkg/variables"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDisburseDelegate_ApprovedAmountTakesPrecedence(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("DisburseLoan", mock.Anything, int64(7), mock.MatchedBy(func(req corebanking.DisburseLoanRequest) bool {
		return req.TransactionAmount.Equal(decimal.NewFromInt(9000))
	})).Return(&corebanking.LoanTransactionResponse{LoanID: 7, ResourceID: 42}, nil)

	bag := variables.NewMapBag("proc-1", map[string]any{
		"loanId":            int64(7),
		"approvedAmount":    decimal.NewFromInt(9000),
		"transactionAmount": decimal.NewFromInt(10000),
	})

	delegate := &DisburseDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.NoError(t, err)
	banking.AssertExpectations(t)

	assert.Equal(t, true, bag.GetVariable("disbursementSuccess"))
	assert.Equal(t, corebanking.LoanStatusDisbursed, bag.GetVariable("loanStatus"))
	assert.Equal(t, 0, bag.GetVariable("retryAttempt"))

	disbursed, ok := bag.GetVariable("disbursedAmount").(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, disbursed.Equal(decimal.NewFromInt(9000)))
}

func TestDisburseDelegate_FallsBackToTransactionAmount(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("DisburseLoan", mock.Anything, int64(7), mock.MatchedBy(func(req corebanking.DisburseLoanRequest) bool {
		return req.TransactionAmount.Equal(decimal.NewFromInt(10000))
	})).Return(&corebanking.LoanTransactionResponse{LoanID: 7}, nil)

	bag := variables.NewMapBag("proc-1", map[string]any{
		"loanId":            int64(7),
		"transactionAmount": "10,000",
	})

	delegate := &DisburseDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.NoError(t, err)
	banking.AssertExpectations(t)
}

func TestDisburseDelegate_MissingLoanIDNeverCallsAPI(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}

	bag := variables.NewMapBag("proc-1", map[string]any{
		"transactionAmount":  decimal.NewFromInt(10000),
		"autoRetryOnFailure": true,
	})

	delegate := &DisburseDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)
	banking.AssertNotCalled(t, "DisburseLoan", mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, false, bag.GetVariable("disbursementSuccess"))
	assert.Equal(t, 1, bag.GetVariable("retryAttempt"))
	assert.Equal(t, FailureTypeSystem, bag.GetVariable("failureType"))
}

func TestDisburseDelegate_APIFailureRecordsFineractFailureType(t *testing.T) {
	apiErr := &faults.APIError{Operation: "disburseLoan", Resource: "loan 7", StatusCode: 502, Body: "bad gateway"}

	banking := &mocks.MockCoreBankingClient{}
	banking.On("DisburseLoan", mock.Anything, int64(7), mock.Anything).Return(nil, apiErr)

	bag := variables.NewMapBag("proc-1", map[string]any{
		"loanId":             int64(7),
		"transactionAmount":  decimal.NewFromInt(10000),
		"autoRetryOnFailure": true,
	})

	delegate := &DisburseDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)
	assert.Same(t, apiErr, err, "core-banking failures pass through unwrapped")

	assert.Equal(t, FailureTypeAPI, bag.GetVariable("failureType"))
	assert.Equal(t, true, bag.GetVariable("shouldRetry"))
	assert.Equal(t, false, bag.GetVariable("escalationRequired"))
	assert.Equal(t, apiErr.Error(), bag.GetVariable("lastError"))
}

func TestDisburseDelegate_SystemFailureWrappedAsWorkflowError(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("DisburseLoan", mock.Anything, int64(7), mock.Anything).Return(nil, errors.New("connection reset"))

	bag := variables.NewMapBag("proc-1", map[string]any{
		"loanId":            int64(7),
		"transactionAmount": decimal.NewFromInt(10000),
	})

	delegate := &DisburseDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)

	var wfErr *faults.WorkflowError
	require.ErrorAs(t, err, &wfErr)
	assert.Equal(t, faults.ErrorLoanDisbursementFailed, wfErr.Code)

	assert.Equal(t, FailureTypeSystem, bag.GetVariable("failureType"))
	assert.Equal(t, false, bag.GetVariable("shouldRetry"))
	assert.Equal(t, true, bag.GetVariable("escalationRequired"))
}

func TestDisburseDelegate_RetrySequenceAcrossInvocations(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("DisburseLoan", mock.Anything, int64(7), mock.Anything).
		Return(nil, &faults.APIError{Operation: "disburseLoan", Resource: "loan 7", StatusCode: 503})

	bag := variables.NewMapBag("proc-1", map[string]any{
		"loanId":             int64(7),
		"transactionAmount":  decimal.NewFromInt(10000),
		"autoRetryOnFailure": true,
	})

	delegate := &DisburseDelegate{banking: banking}

	wantRetry := []bool{true, true, false}
	for attempt, want := range wantRetry {
		err := delegate.Execute(context.Background(), bag, testLogger())
		require.Error(t, err)

		assert.Equal(t, attempt+1, bag.GetVariable("retryAttempt"))
		assert.Equal(t, want, bag.GetVariable("shouldRetry"))
		assert.Equal(t, !want, bag.GetVariable("escalationRequired"))
	}

	assert.Equal(t, true, bag.GetVariable("maxRetriesExceeded"))
}
