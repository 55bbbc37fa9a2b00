package loan

import (
	"context"
	"errors"
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

func loanApplicationSeed() map[string]any {
	return map[string]any{
		"clientId":                        int64(7),
		"productId":                       int64(2),
		"principal":                       "250000",
		"amortizationType":                int64(1),
		"interestCalculationPeriodType":   int64(1),
		"transactionProcessingStrategyId": int64(1),
	}
}

func TestCreateDelegate_Success(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("CreateLoan", mock.Anything, mock.MatchedBy(func(req corebanking.CreateLoanRequest) bool {
		return req.ClientID == 7 &&
			req.Principal.Equal(decimal.NewFromInt(250000)) &&
			req.LoanTermFrequency == 12 &&
			req.NumberOfRepayments == 12 &&
			req.LoanType == "individual" &&
			req.DateFormat == "dd MMMM yyyy"
	})).Return(&corebanking.LoanResponse{LoanID: 31, ClientID: 7}, nil)

	bag := variables.NewMapBag("proc-1", loanApplicationSeed())

	delegate := &CreateDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.NoError(t, err)
	banking.AssertExpectations(t)

	assert.Equal(t, int64(31), bag.GetVariable("loanId"))
	assert.Equal(t, true, bag.GetVariable("loanCreationSuccess"))
}

func TestCreateDelegate_MissingMandatoryFieldNamesIt(t *testing.T) {
	seed := loanApplicationSeed()
	delete(seed, "amortizationType")

	banking := &mocks.MockCoreBankingClient{}
	bag := variables.NewMapBag("proc-1", seed)

	delegate := &CreateDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)
	banking.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)

	assert.True(t, faults.IsArgumentError(err))
	assert.Contains(t, err.Error(), "amortizationType")
}

func TestCreateDelegate_SystemFailureWrapped(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("CreateLoan", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	bag := variables.NewMapBag("proc-1", loanApplicationSeed())

	delegate := &CreateDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)

	var wfErr *faults.WorkflowError
	require.ErrorAs(t, err, &wfErr)
	assert.Equal(t, faults.ErrorLoanCreationFailed, wfErr.Code)
	assert.Equal(t, "WORKFLOW_ERROR", bag.GetVariable("errorType"))
}

func TestCreateDelegate_APIFailurePassesThrough(t *testing.T) {
	apiErr := &faults.APIError{Operation: "createLoan", Resource: "client 7", StatusCode: 403, Body: "forbidden"}

	banking := &mocks.MockCoreBankingClient{}
	banking.On("CreateLoan", mock.Anything, mock.Anything).Return(nil, apiErr)

	bag := variables.NewMapBag("proc-1", loanApplicationSeed())

	delegate := &CreateDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)
	assert.Same(t, apiErr, err)
	assert.Equal(t, "API_ERROR", bag.GetVariable("errorType"))
}
