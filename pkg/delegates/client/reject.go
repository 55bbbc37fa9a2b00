package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/variables"
)

// RejectDelegate rejects a pending client application.
type RejectDelegate struct {
	banking corebanking.Client
}

func (d *RejectDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "clientRejection"

	logger = logger.With("delegate", "reject_client")

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	reasonID, err := resolveReason(ctx, d.banking, bag, corebanking.CodeClientRejectReason, "rejectionReason")
	if err != nil {
		return delegates.Fail(bag, operation, "rejectionReason", err)
	}

	rejectionDate := variables.DateValue(bag, "rejectionDate", logger)
	if rejectionDate == nil {
		rejectionDate = time.Now().UTC()
	}

	resp, err := d.banking.RejectClient(ctx, clientID, reasonID, formatDate(rejectionDate))
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), err)
	}

	bag.SetVariable("clientId", resp.ClientID)
	bag.SetVariable("rejectionReasonId", reasonID)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Client %d rejected", resp.ClientID))

	logger.Info("Client rejected", "client_id", resp.ClientID, "rejection_reason_id", reasonID)

	return nil
}

type RejectFactory struct {
	banking corebanking.Client
}

func NewRejectFactory(banking corebanking.Client) *RejectFactory {
	return &RejectFactory{banking: banking}
}

func (*RejectFactory) ID() string {
	return "rejectClient"
}

func (*RejectFactory) Name() string {
	return "Reject Client"
}

func (*RejectFactory) Description() string {
	return "Rejects a pending client application, resolving the rejection reason to a code value first."
}

func (*RejectFactory) Schema() map[string]any {
	return nil
}

func (f *RejectFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &RejectDelegate{banking: f.banking}, nil
}
