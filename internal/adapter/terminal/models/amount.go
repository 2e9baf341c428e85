package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a free-text prompt answer into an amount in the
// smallest currency unit. Only positive whole-unit values are accepted; the
// decimal round-trip rejects everything strconv would and fractions besides.
func ParseAmount(text string) (int64, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("amount must be a number")
	}

	if !value.IsInteger() {
		return 0, fmt.Errorf("amount must be a whole number")
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("amount must be greater than zero")
	}
	if !value.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount is too large")
	}

	return value.BigInt().Int64(), nil
}

// FormatAmount renders a minor-unit amount for display.
func FormatAmount(amount int64) string {
	return decimal.NewFromInt(amount).String()
}
