package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/variables"
)

// AssignStaffDelegate assigns a staff member to a client. The staff member is
// optional: when no staffId variable is present the delegate records that no
// assignment happened and succeeds without calling the core-banking API.
type AssignStaffDelegate struct {
	banking corebanking.Client
}

func (d *AssignStaffDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "staffAssignment"

	logger = logger.With("delegate", "assign_staff")

	if !bag.HasVariable("staffId") {
		bag.SetVariable("staffAssigned", false)
		delegates.MarkSuccess(bag, operation, "No staff to assign")

		logger.Info("No staffId provided, skipping assignment")

		return nil
	}

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	staffID, err := variables.RequiredLong(bag, "staffId")
	if err != nil {
		return delegates.Fail(bag, operation, "staffId", err)
	}

	if _, err := d.banking.AssignStaff(ctx, clientID, staffID); err != nil {
		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), err)
	}

	bag.SetVariable("staffAssigned", true)
	bag.SetVariable("staffId", staffID)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Staff %d assigned to client %d", staffID, clientID))

	logger.Info("Staff assigned", "client_id", clientID, "staff_id", staffID)

	return nil
}

type AssignStaffFactory struct {
	banking corebanking.Client
}

func NewAssignStaffFactory(banking corebanking.Client) *AssignStaffFactory {
	return &AssignStaffFactory{banking: banking}
}

func (*AssignStaffFactory) ID() string {
	return "assignStaff"
}

func (*AssignStaffFactory) Name() string {
	return "Assign Staff"
}

func (*AssignStaffFactory) Description() string {
	return "Assigns a staff member to a client when a staffId is provided."
}

func (*AssignStaffFactory) Schema() map[string]any {
	return nil
}

func (f *AssignStaffFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &AssignStaffDelegate{banking: f.banking}, nil
}
