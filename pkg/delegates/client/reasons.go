package client

import (
	"context"
	"fmt"

	"github.com/lcampos/bankflow/pkg/corebanking"
	"github.com/lcampos/bankflow/pkg/variables"
)

// resolveReason turns a reason into a code value id. A numeric <prefix>Id
// variable wins; otherwise the <prefix> variable's text is looked up in the
// named code, creating the value when it does not exist yet.
func resolveReason(ctx context.Context, banking corebanking.Client, bag variables.Bag, codeName, prefix string) (int64, error) {
	if bag.HasVariable(prefix + "Id") {
		return variables.RequiredLong(bag, prefix+"Id")
	}

	name, err := variables.RequiredString(bag, prefix)
	if err != nil {
		return 0, err
	}

	values, err := banking.GetCodeValues(ctx, codeName)
	if err != nil {
		return 0, err
	}

	for _, value := range values {
		if value.Name == name {
			return value.ID, nil
		}
	}

	created, err := banking.CreateCodeValue(ctx, codeName, name)
	if err != nil {
		return 0, fmt.Errorf("creating %s code value %q: %w", codeName, name, err)
	}

	return created.ID, nil
}
