package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

const MAX_DESCRIPTION_LENGTH = 100

var MAX_EXPENSE_AMOUNT = decimal.RequireFromString("999999.99")

// ValidateDescription reports whether text trims to 1-100 characters.
func ValidateDescription(text string) bool {
	trimmed := strings.TrimSpace(text)
	return len(trimmed) >= 1 && len(trimmed) <= MAX_DESCRIPTION_LENGTH
}

// ValidateAmount reports whether raw parses as a decimal number that is
// greater than zero and at most 999999.99. Input that is not fully numeric
// is rejected, never coerced.
func ValidateAmount(raw string) bool {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return amount.IsPositive() && amount.LessThanOrEqual(MAX_EXPENSE_AMOUNT)
}
