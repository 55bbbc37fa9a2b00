// Package delegates provides the output-key conventions shared by every task
// delegate. For each operation a fixed set of result variables is written:
// <operation>Success, <operation>Message, the operation's domain keys, and on
// failure errorMessage plus errorType. Success and failure sets are mutually
// exclusive; together they are the only delegate-level audit trail the
// process carries.
package delegates

import (
	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/lcampos/bankflow/pkg/variables"
)

// MarkSuccess writes the fixed success-output keys for an operation.
func MarkSuccess(bag variables.Bag, operation, message string) {
	bag.SetVariable(operation+"Success", true)
	bag.SetVariable(operation+"Message", message)
}

// MarkFailure writes the fixed failure-output keys for an operation.
func MarkFailure(bag variables.Bag, operation string, err error) {
	bag.SetVariable(operation+"Success", false)
	bag.SetVariable(operation+"Message", err.Error())
	bag.SetVariable("errorMessage", err.Error())
	bag.SetVariable("errorType", faults.KindOf(err))
}

// Fail writes the failure-output keys, classifies the causing error and
// returns the typed result for the delegate to re-raise. Delegates never
// swallow a failure: the bag records it and the engine receives it.
func Fail(bag variables.Bag, operation, param string, err error) error {
	MarkFailure(bag, operation, err)

	return faults.Classify(err, operation, param)
}
