// Package client implements the task delegates for the client lifecycle:
// creation, activation, closure, rejection, office transfers and staff
// assignment.
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

const dateLayout = "02 January 2006"

// CreateDelegate submits a new client to the core-banking API.
type CreateDelegate struct {
	banking corebanking.Client
}

func (d *CreateDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "clientCreation"

	logger = logger.With("delegate", "create_client")

	firstName, err := variables.RequiredString(bag, "firstname")
	if err != nil {
		return delegates.Fail(bag, operation, "firstname", err)
	}

	lastName, err := variables.RequiredString(bag, "lastname")
	if err != nil {
		return delegates.Fail(bag, operation, "lastname", err)
	}

	officeID, err := variables.RequiredLong(bag, "officeId")
	if err != nil {
		return delegates.Fail(bag, operation, "officeId", err)
	}

	req := corebanking.CreateClientRequest{
		OfficeID:   officeID,
		FirstName:  firstName,
		LastName:   lastName,
		ExternalID: variables.OptionalString(bag, "externalId", ""),
		MobileNo:   variables.OptionalString(bag, "mobileNo", ""),
	}

	if activation := variables.DateValue(bag, "activationDate", logger); activation != nil {
		req.Active = true
		req.ActivationDate = formatDate(activation)
		req.DateFormat = "dd MMMM yyyy"
		req.Locale = "en"
	}

	resp, err := d.banking.CreateClient(ctx, req)
	if err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("office %d", officeID), err)
	}

	bag.SetVariable("clientId", resp.ClientID)
	bag.SetVariable("officeId", resp.OfficeID)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Client %d created", resp.ClientID))

	logger.Info("Client created", "client_id", resp.ClientID)

	return nil
}

// formatDate renders a coerced date variable the way the core-banking API
// expects, passing already-formatted strings through untouched.
func formatDate(value any) string {
	if date, ok := value.(time.Time); ok {
		return date.Format(dateLayout)
	}

	return fmt.Sprintf("%v", value)
}

type CreateFactory struct {
	banking corebanking.Client
}

func NewCreateFactory(banking corebanking.Client) *CreateFactory {
	return &CreateFactory{banking: banking}
}

func (*CreateFactory) ID() string {
	return "createClient"
}

func (*CreateFactory) Name() string {
	return "Create Client"
}

func (*CreateFactory) Description() string {
	return "Submits a new client to the core-banking API and records the resulting client id."
}

func (*CreateFactory) Schema() map[string]any {
	return nil
}

func (f *CreateFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &CreateDelegate{banking: f.banking}, nil
}
