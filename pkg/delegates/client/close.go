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

// CloseDelegate closes a client as part of offboarding.
type CloseDelegate struct {
	banking corebanking.Client
}

func (d *CloseDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "clientClosure"

	logger = logger.With("delegate", "close_client")

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	reasonID, err := resolveReason(ctx, d.banking, bag, corebanking.CodeClientClosureReason, "closureReason")
	if err != nil {
		return delegates.Fail(bag, operation, "closureReason", err)
	}

	closureDate := variables.DateValue(bag, "closureDate", logger)
	if closureDate == nil {
		closureDate = time.Now().UTC()
	}

	resp, err := d.banking.CloseClient(ctx, clientID, reasonID, formatDate(closureDate))
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), err)
	}

	bag.SetVariable("clientId", resp.ClientID)
	bag.SetVariable("closureReasonId", reasonID)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Client %d closed", resp.ClientID))

	logger.Info("Client closed", "client_id", resp.ClientID, "closure_reason_id", reasonID)

	return nil
}

type CloseFactory struct {
	banking corebanking.Client
}

func NewCloseFactory(banking corebanking.Client) *CloseFactory {
	return &CloseFactory{banking: banking}
}

func (*CloseFactory) ID() string {
	return "closeClient"
}

func (*CloseFactory) Name() string {
	return "Close Client"
}

func (*CloseFactory) Description() string {
	return "Closes a client, resolving the closure reason to a code value first."
}

func (*CloseFactory) Schema() map[string]any {
	return nil
}

func (f *CloseFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &CloseDelegate{banking: f.banking}, nil
}
