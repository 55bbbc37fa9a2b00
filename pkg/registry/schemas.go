package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var errSchemaValidation = errors.New("configuration schema validation failed")

// validateConfig checks a delegate configuration against the factory's JSON
// schema. A nil schema means the delegate takes no configuration and anything
// passes.
func validateConfig(schema map[string]any, config map[string]any) error {
	if schema == nil {
		return nil
	}

	if config == nil {
		config = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(config),
	)
	if err != nil {
		return fmt.Errorf("evaluating configuration schema: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		details = append(details, resultErr.String())
	}

	return fmt.Errorf("%w: %s", errSchemaValidation, strings.Join(details, "; "))
}
