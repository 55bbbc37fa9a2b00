package variables

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lcampos/bankflow/pkg/faults"
	"github.com/shopspring/decimal"
)

// acceptedDateLayouts is the ordered list of string formats a date variable may
// arrive in. Matching stops at the first layout that parses.
var acceptedDateLayouts = []string{
	"02 Jan 2006",
	"02 January 2006",
	time.RFC3339,
	"2006-01-02",
}

// RequiredString returns the value of key as a string, failing when the key is
// absent or nil.
func RequiredString(bag Bag, key string) (string, error) {
	value := bag.GetVariable(key)
	if value == nil {
		return "", faults.MissingArgument(key)
	}

	if str, ok := value.(string); ok {
		return str, nil
	}

	return fmt.Sprintf("%v", value), nil
}

// OptionalString returns the value of key as a string, or fallback when the
// key is absent or nil.
func OptionalString(bag Bag, key, fallback string) string {
	value := bag.GetVariable(key)
	if value == nil {
		return fallback
	}

	if str, ok := value.(string); ok {
		return str
	}

	return fmt.Sprintf("%v", value)
}

// RequiredLong returns the value of key as an int64. Numeric strings may carry
// grouping separators ("1,000" parses as 1000); any other parse failure is an
// argument error naming the key and the offending value.
func RequiredLong(bag Bag, key string) (int64, error) {
	value := bag.GetVariable(key)
	if value == nil {
		return 0, faults.MissingArgument(key)
	}

	return toLong(key, value)
}

// OptionalLong returns the value of key as an int64, or fallback when absent.
// A present but malformed value is still an argument error.
func OptionalLong(bag Bag, key string, fallback int64) (int64, error) {
	value := bag.GetVariable(key)
	if value == nil {
		return fallback, nil
	}

	return toLong(key, value)
}

// RequiredDecimal returns the value of key as a decimal, with the same strict
// parsing rules as RequiredLong.
func RequiredDecimal(bag Bag, key string) (decimal.Decimal, error) {
	value := bag.GetVariable(key)
	if value == nil {
		return decimal.Zero, faults.MissingArgument(key)
	}

	return toDecimal(key, value)
}

// OptionalDecimal returns the value of key as a decimal, or fallback when
// absent.
func OptionalDecimal(bag Bag, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value := bag.GetVariable(key)
	if value == nil {
		return fallback, nil
	}

	return toDecimal(key, value)
}

// OptionalInt returns the value of key as an int, or fallback when absent.
func OptionalInt(bag Bag, key string, fallback int) (int, error) {
	value := bag.GetVariable(key)
	if value == nil {
		return fallback, nil
	}

	parsed, err := toLong(key, value)
	if err != nil {
		return 0, err
	}

	return int(parsed), nil
}

// OptionalBool returns the value of key as a bool, accepting native booleans
// and the strings "true"/"false". Anything else yields fallback.
func OptionalBool(bag Bag, key string, fallback bool) bool {
	value := bag.GetVariable(key)
	if value == nil {
		return fallback
	}

	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}

		return parsed
	default:
		return fallback
	}
}

// DateValue coerces the value of key into a time.Time when possible. Native
// dates pass through as-is; strings are tried against the accepted layouts in
// order. An unparseable date string is returned unmodified with a logged
// warning rather than raising, to tolerate already-formatted upstream values.
// Callers key behavior off this leniency, so it must not be tightened.
func DateValue(bag Bag, key string, logger *slog.Logger) any {
	value := bag.GetVariable(key)
	if value == nil {
		return nil
	}

	if date, ok := value.(time.Time); ok {
		return date
	}

	str, ok := value.(string)
	if !ok {
		return value
	}

	for _, layout := range acceptedDateLayouts {
		if date, err := time.Parse(layout, str); err == nil {
			return date
		}
	}

	logger.Warn("Date variable did not match any accepted format, passing through unmodified",
		"key", key, "value", str)

	return str
}

func toLong(key string, value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		parsed, err := strconv.ParseInt(degroup(v), 10, 64)
		if err != nil {
			return 0, faults.MalformedArgument(key, v, err)
		}

		return parsed, nil
	default:
		return 0, faults.MalformedArgument(key, value, fmt.Errorf("unsupported type %T", value))
	}
}

func toDecimal(key string, value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case string:
		parsed, err := decimal.NewFromString(degroup(v))
		if err != nil {
			return decimal.Zero, faults.MalformedArgument(key, v, err)
		}

		return parsed, nil
	default:
		return decimal.Zero, faults.MalformedArgument(key, value, fmt.Errorf("unsupported type %T", value))
	}
}

// degroup strips grouping separators from a numeric string ("1,000.50" ->
// "1000.50").
func degroup(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), ",", "")
}
