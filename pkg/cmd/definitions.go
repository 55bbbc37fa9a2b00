package cmd

import "github.com/lcampos/bankflow/pkg/engine"

// RegisterDefinitions installs the banking process definitions on the
// dispatcher. Steps with a UserTask pause the process until the task is
// completed through the API.
func RegisterDefinitions(dispatcher *engine.Dispatcher) {
	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "clientOnboarding",
		Steps: []engine.Step{
			{DelegateID: "createClient"},
			{DelegateID: "assignStaff"},
			{DelegateID: "activateClient"},
		},
	})

	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "clientOffboarding",
		Steps: []engine.Step{
			{DelegateID: "closeClient"},
		},
	})

	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "clientRejection",
		Steps: []engine.Step{
			{DelegateID: "rejectClient"},
		},
	})

	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "clientTransfer",
		Steps: []engine.Step{
			{DelegateID: "proposeTransfer"},
			{UserTask: "reviewTransfer"},
			{DelegateID: "acceptTransfer"},
		},
	})

	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "loanOrigination",
		Steps: []engine.Step{
			{DelegateID: "createLoan"},
			{UserTask: "reviewLoanApplication"},
			{DelegateID: "approveLoan"},
			{DelegateID: "verifyLoanStatus"},
		},
	})

	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "loanDisbursement",
		Steps: []engine.Step{
			{DelegateID: "verifyLoanStatus"},
			{DelegateID: "disburseLoan"},
		},
	})

	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "loanRejection",
		Steps: []engine.Step{
			{DelegateID: "rejectLoan"},
		},
	})

	dispatcher.RegisterDefinition(engine.ProcessDefinition{
		Key: "loanCancellation",
		Steps: []engine.Step{
			{DelegateID: "cancelLoan"},
		},
	})
}
