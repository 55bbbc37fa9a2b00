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

// ActivateDelegate activates a previously created client.
type ActivateDelegate struct {
	banking corebanking.Client
}

func (d *ActivateDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "clientActivation"

	logger = logger.With("delegate", "activate_client")

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	activationDate := variables.DateValue(bag, "activationDate", logger)
	if activationDate == nil {
		activationDate = time.Now().UTC()
	}

	resp, err := d.banking.ActivateClient(ctx, clientID, formatDate(activationDate))
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), err)
	}

	bag.SetVariable("clientId", resp.ClientID)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Client %d activated", resp.ClientID))

	logger.Info("Client activated", "client_id", resp.ClientID)

	return nil
}

type ActivateFactory struct {
	banking corebanking.Client
}

func NewActivateFactory(banking corebanking.Client) *ActivateFactory {
	return &ActivateFactory{banking: banking}
}

func (*ActivateFactory) ID() string {
	return "activateClient"
}

func (*ActivateFactory) Name() string {
	return "Activate Client"
}

func (*ActivateFactory) Description() string {
	return "Activates a pending client so accounts can be opened against it."
}

func (*ActivateFactory) Schema() map[string]any {
	return nil
}

func (f *ActivateFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &ActivateDelegate{banking: f.banking}, nil
}
