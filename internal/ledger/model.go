package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appErrors "expensetracker/errors"
)

const displayDateLayout = "Jan 2, 2006"

// Expense is a plain value; updates produce a new value via Updated, so a
// snapshot for rollback is just the old value.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	DisplayDate string          `json:"date"`
}

// NewExpense validates and builds an expense with a fresh id and the current
// time. rawAmount is the unparsed input the UI read from its field.
func NewExpense(description string, rawAmount string) (Expense, error) {
	if err := checkFields(description, rawAmount); err != nil {
		return Expense{}, err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(rawAmount))
	now := time.Now().UTC()

	return Expense{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Timestamp:   now,
		DisplayDate: now.Format(displayDateLayout),
	}, nil
}

// Updated returns a copy with the new description and amount. The id and the
// original timestamp are retained; the display date is re-derived from it.
func (e Expense) Updated(description string, rawAmount string) (Expense, error) {
	if err := checkFields(description, rawAmount); err != nil {
		return Expense{}, err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(rawAmount))
	e.Description = strings.TrimSpace(description)
	e.Amount = amount
	e.DisplayDate = e.Timestamp.Format(displayDateLayout)
	return e, nil
}

// checkFields enforces exactly the rules ValidateDescription and
// ValidateAmount enforce, so validation and persisted data cannot disagree.
func checkFields(description string, rawAmount string) error {
	if !ValidateDescription(description) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrValidation,
			Message: "Description must be 1-100 characters long and cannot be empty",
		}
	}
	if !ValidateAmount(rawAmount) {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrValidation,
			Message: "Amount must be a positive number up to $999,999.99",
		}
	}
	return nil
}

// valid re-checks a loaded expense against the construction rules.
func (e Expense) valid() bool {
	return e.ID != "" &&
		ValidateDescription(e.Description) &&
		e.Amount.IsPositive() &&
		e.Amount.LessThanOrEqual(MAX_EXPENSE_AMOUNT)
}
