package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/variables"
)

// Transfer statuses written to the transferStatus variable.
const (
	TransferStatusProposed = "PROPOSED"
	TransferStatusAccepted = "ACCEPTED"
	TransferStatusRejected = "REJECTED"
)

// transferError wraps a failure that did not come from the core-banking API
// as a client-transfer workflow error. API errors keep their own type.
func transferError(operation string, cause error) error {
	if faults.IsAPIError(cause) {
		return cause
	}

	return &faults.WorkflowError{
		Op:      operation,
		Code:    faults.ErrorClientTransferFailed,
		Message: fmt.Sprintf("Client transfer failed: %v", cause),
		Err:     cause,
	}
}

// ProposeTransferDelegate proposes moving a client to a destination office.
type ProposeTransferDelegate struct {
	banking corebanking.Client
}

func (d *ProposeTransferDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "transferProposal"

	logger = logger.With("delegate", "propose_transfer")

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	destinationOfficeID, err := variables.RequiredLong(bag, "destinationOfficeId")
	if err != nil {
		return delegates.Fail(bag, operation, "destinationOfficeId", err)
	}

	req := corebanking.TransferProposalRequest{
		DestinationOfficeID: destinationOfficeID,
		Note:                variables.OptionalString(bag, "transferNote", ""),
	}

	if transferDate := variables.DateValue(bag, "transferDate", logger); transferDate != nil {
		req.TransferDate = formatDate(transferDate)
		req.DateFormat = "dd MMMM yyyy"
		req.Locale = "en"
	}

	resp, err := d.banking.ProposeTransfer(ctx, clientID, req)
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), transferError(operation, err))
	}

	bag.SetVariable("clientId", resp.ClientID)
	bag.SetVariable("transferStatus", TransferStatusProposed)
	delegates.MarkSuccess(bag, operation,
		fmt.Sprintf("Transfer of client %d to office %d proposed", clientID, destinationOfficeID))

	logger.Info("Transfer proposed", "client_id", clientID, "destination_office_id", destinationOfficeID)

	return nil
}

type ProposeTransferFactory struct {
	banking corebanking.Client
}

func NewProposeTransferFactory(banking corebanking.Client) *ProposeTransferFactory {
	return &ProposeTransferFactory{banking: banking}
}

func (*ProposeTransferFactory) ID() string {
	return "proposeTransfer"
}

func (*ProposeTransferFactory) Name() string {
	return "Propose Client Transfer"
}

func (*ProposeTransferFactory) Description() string {
	return "Proposes transferring a client to a destination office."
}

func (*ProposeTransferFactory) Schema() map[string]any {
	return nil
}

func (f *ProposeTransferFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &ProposeTransferDelegate{banking: f.banking}, nil
}

// AcceptTransferDelegate accepts a proposed transfer at the destination
// office.
type AcceptTransferDelegate struct {
	banking corebanking.Client
}

func (d *AcceptTransferDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "transferAcceptance"

	logger = logger.With("delegate", "accept_transfer")

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	resp, err := d.banking.AcceptTransfer(ctx, clientID, variables.OptionalString(bag, "transferNote", ""))
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), transferError(operation, err))
	}

	bag.SetVariable("clientId", resp.ClientID)
	bag.SetVariable("transferStatus", TransferStatusAccepted)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Transfer of client %d accepted", clientID))

	logger.Info("Transfer accepted", "client_id", clientID)

	return nil
}

type AcceptTransferFactory struct {
	banking corebanking.Client
}

func NewAcceptTransferFactory(banking corebanking.Client) *AcceptTransferFactory {
	return &AcceptTransferFactory{banking: banking}
}

func (*AcceptTransferFactory) ID() string {
	return "acceptTransfer"
}

func (*AcceptTransferFactory) Name() string {
	return "Accept Client Transfer"
}

func (*AcceptTransferFactory) Description() string {
	return "Accepts a proposed client transfer at the destination office."
}

func (*AcceptTransferFactory) Schema() map[string]any {
	return nil
}

func (f *AcceptTransferFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &AcceptTransferDelegate{banking: f.banking}, nil
}

// RejectTransferDelegate rejects a proposed transfer.
type RejectTransferDelegate struct {
	banking corebanking.Client
}

func (d *RejectTransferDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "transferRejection"

	logger = logger.With("delegate", "reject_transfer")

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	resp, err := d.banking.RejectTransfer(ctx, clientID, variables.OptionalString(bag, "transferNote", ""))
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), transferError(operation, err))
	}

	bag.SetVariable("clientId", resp.ClientID)
	bag.SetVariable("transferStatus", TransferStatusRejected)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Transfer of client %d rejected", clientID))

	logger.Info("Transfer rejected", "client_id", clientID)

	return nil
}

type RejectTransferFactory struct {
	banking corebanking.Client
}

func NewRejectTransferFactory(banking corebanking.Client) *RejectTransferFactory {
	return &RejectTransferFactory{banking: banking}
}

func (*RejectTransferFactory) ID() string {
	return "rejectTransfer"
}

func (*RejectTransferFactory) Name() string {
	return "Reject Client Transfer"
}

func (*RejectTransferFactory) Description() string {
	return "Rejects a proposed client transfer."
}

func (*RejectTransferFactory) Schema() map[string]any {
	return nil
}

func (f *RejectTransferFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &RejectTransferDelegate{banking: f.banking}, nil
}
