package client

import (
	"context"
	"errors"
	"testing"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/mocks"
	"github.com/lcampos/bankflow/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProposeTransferDelegate_Success(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("ProposeTransfer", mock.Anything, int64(7), mock.MatchedBy(func(req corebanking.TransferProposalRequest) bool {
		return req.DestinationOfficeID == 3 && req.Note == "branch merge"
	})).Return(&corebanking.ClientResponse{ClientID: 7}, nil)

	bag := variables.NewMapBag("proc-1", map[string]any{
		"clientId":            int64(7),
		"destinationOfficeId": int64(3),
		"transferNote":        "branch merge",
	})

	delegate := &ProposeTransferDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.NoError(t, err)
	banking.AssertExpectations(t)

	assert.Equal(t, TransferStatusProposed, bag.GetVariable("transferStatus"))
	assert.Equal(t, true, bag.GetVariable("transferProposalSuccess"))
}

func TestProposeTransferDelegate_SystemFailureWrapped(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("ProposeTransfer", mock.Anything, int64(7), mock.Anything).
		Return(nil, errors.New("connection reset"))

	bag := variables.NewMapBag("proc-1", map[string]any{
		"clientId":            int64(7),
		"destinationOfficeId": int64(3),
	})

	delegate := &ProposeTransferDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)

	var wfErr *faults.WorkflowError
	require.ErrorAs(t, err, &wfErr)
	assert.Equal(t, faults.ErrorClientTransferFailed, wfErr.Code)
	assert.Equal(t, "WORKFLOW_ERROR", bag.GetVariable("errorType"))
}

func TestAcceptTransferDelegate_APIFailurePassesThrough(t *testing.T) {
	apiErr := &faults.APIError{Operation: "acceptTransfer", Resource: "client 7", StatusCode: 409, Body: "conflict"}

	banking := &mocks.MockCoreBankingClient{}
	banking.On("AcceptTransfer", mock.Anything, int64(7), "").Return(nil, apiErr)

	bag := variables.NewMapBag("proc-1", map[string]any{"clientId": int64(7)})

	delegate := &AcceptTransferDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.Error(t, err)
	assert.Same(t, apiErr, err)
	assert.Equal(t, "API_ERROR", bag.GetVariable("errorType"))
}

func TestRejectTransferDelegate_Success(t *testing.T) {
	banking := &mocks.MockCoreBankingClient{}
	banking.On("RejectTransfer", mock.Anything, int64(7), "stay put").
		Return(&corebanking.ClientResponse{ClientID: 7}, nil)

	bag := variables.NewMapBag("proc-1", map[string]any{
		"clientId":     int64(7),
		"transferNote": "stay put",
	})

	delegate := &RejectTransferDelegate{banking: banking}
	err := delegate.Execute(context.Background(), bag, testLogger())

	require.NoError(t, err)
	assert.Equal(t, TransferStatusRejected, bag.GetVariable("transferStatus"))
}
