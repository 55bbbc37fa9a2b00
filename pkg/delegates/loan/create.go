package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/delegates"
	"github.com/lcampos/bankflow/pkg/engine"
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/variables"
	"github.com/shopspring/decimal"
)

const dateLayout = "02 January 2006"

// CreateDelegate submits a new loan application. Numeric inputs may arrive as
// comma-grouped strings and are de-grouped by the accessors before
// conversion; the amortization, interest calculation and processing strategy
// fields are business-mandatory and missing values raise argument errors
// naming the field.
type CreateDelegate struct {
	banking corebanking.Client
}

func (d *CreateDelegate) Execute(ctx context.Context, bag variables.Bag, logger *slog.Logger) error {
	const operation = "loanCreation"

	logger = logger.With("delegate", "create_loan")

	clientID, err := variables.RequiredLong(bag, "clientId")
	if err != nil {
		return delegates.Fail(bag, operation, "clientId", err)
	}

	productID, err := variables.RequiredLong(bag, "productId")
	if err != nil {
		return delegates.Fail(bag, operation, "productId", err)
	}

	principal, err := variables.RequiredDecimal(bag, "principal")
	if err != nil {
		return delegates.Fail(bag, operation, "principal", err)
	}

	amortizationType, err := variables.RequiredLong(bag, "amortizationType")
	if err != nil {
		return delegates.Fail(bag, operation, "amortizationType", err)
	}

	interestCalculationPeriodType, err := variables.RequiredLong(bag, "interestCalculationPeriodType")
	if err != nil {
		return delegates.Fail(bag, operation, "interestCalculationPeriodType", err)
	}

	processingStrategyID, err := variables.RequiredLong(bag, "transactionProcessingStrategyId")
	if err != nil {
		return delegates.Fail(bag, operation, "transactionProcessingStrategyId", err)
	}

	termFrequency, err := variables.OptionalInt(bag, "loanTermFrequency", 12)
	if err != nil {
		return delegates.Fail(bag, operation, "loanTermFrequency", err)
	}

	repayments, err := variables.OptionalInt(bag, "numberOfRepayments", termFrequency)
	if err != nil {
		return delegates.Fail(bag, operation, "numberOfRepayments", err)
	}

	interestRate, err := variables.OptionalDecimal(bag, "interestRatePerPeriod", decimal.Zero)
	if err != nil {
		return delegates.Fail(bag, operation, "interestRatePerPeriod", err)
	}

	req := corebanking.CreateLoanRequest{
		ClientID:                        clientID,
		ProductID:                       productID,
		Principal:                       principal,
		LoanTermFrequency:               termFrequency,
		LoanTermFrequencyType:           2,
		NumberOfRepayments:              repayments,
		RepaymentEvery:                  1,
		RepaymentFrequencyType:          2,
		InterestRatePerPeriod:           interestRate,
		AmortizationType:                int(amortizationType),
		InterestType:                    0,
		InterestCalculationPeriodType:   int(interestCalculationPeriodType),
		TransactionProcessingStrategyID: processingStrategyID,
		SubmittedOnDate:                 time.Now().Format(dateLayout),
		LoanType:                        "individual",
		DateFormat:                      "dd MMMM yyyy",
		Locale:                          "en",
	}

	if disbursement := variables.DateValue(bag, "expectedDisbursementDate", logger); disbursement != nil {
		req.ExpectedDisbursementDate = formatDate(disbursement)
	}

	resp, err := d.banking.CreateLoan(ctx, req)
	if err != nil {
		if !faults.IsAPIError(err) {
			err = &faults.WorkflowError{
				Op:      operation,
				Code:    faults.ErrorLoanCreationFailed,
				Message: fmt.Sprintf("Loan creation failed: %v", err),
				Err:     err,
			}
		}

		return delegates.Fail(bag, operation, fmt.Sprintf("client %d", clientID), err)
	}

	bag.SetVariable("loanId", resp.LoanID)
	bag.SetVariable("clientId", resp.ClientID)
	bag.SetVariable("principal", principal)
	delegates.MarkSuccess(bag, operation, fmt.Sprintf("Loan %d created for client %d", resp.LoanID, resp.ClientID))

	logger.Info("Loan created", "loan_id", resp.LoanID, "client_id", resp.ClientID)

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
	return "createLoan"
}

func (*CreateFactory) Name() string {
	return "Create Loan"
}

func (*CreateFactory) Description() string {
	return "Submits a new loan application and records the resulting loan id."
}

func (*CreateFactory) Schema() map[string]any {
	return nil
}

func (f *CreateFactory) Create(_ context.Context, _ map[string]any) (engine.Delegate, error) {
	return &CreateDelegate{banking: f.banking}, nil
}
