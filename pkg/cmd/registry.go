// Package cmd provides common initialization for the command-line
// applications: the delegate registry, the event bus, and the process
// definitions served by the in-process dispatcher.
package cmd

import (
	"log/slog"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates/client"
	"github.com/lcampos/bankflow/pkg/delegates/loan"
	"github.com/lcampos/bankflow/pkg/registry"
)

// NewRegistry builds the delegate registry with every delegate type this
// deployment knows, all bound to the same core-banking client.
func NewRegistry(banking corebanking.Client, logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)

	registerClientDelegates(reg, banking)
	registerLoanDelegates(reg, banking)

	return reg
}

func registerClientDelegates(reg *registry.Registry, banking corebanking.Client) {
	reg.Register(client.NewCreateFactory(banking))
	reg.Register(client.NewActivateFactory(banking))
	reg.Register(client.NewCloseFactory(banking))
	reg.Register(client.NewRejectFactory(banking))
	reg.Register(client.NewAssignStaffFactory(banking))
	reg.Register(client.NewProposeTransferFactory(banking))
	reg.Register(client.NewAcceptTransferFactory(banking))
	reg.Register(client.NewRejectTransferFactory(banking))
}

func registerLoanDelegates(reg *registry.Registry, banking corebanking.Client) {
	reg.Register(loan.NewCreateFactory(banking))
	reg.Register(loan.NewApproveFactory(banking))
	reg.Register(loan.NewRejectFactory(banking))
	reg.Register(loan.NewCancelFactory(banking))
	reg.Register(loan.NewDisburseFactory(banking))
	reg.Register(loan.NewVerifyFactory(banking))
}
