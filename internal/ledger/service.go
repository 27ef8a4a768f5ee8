package ledger

import (
	"github.com/shopspring/decimal"

	appErrors "expensetracker/errors"
	"expensetracker/logging"
)

// ExpenseStore is what the ledger needs from the account layer.
type ExpenseStore interface {
	Expenses(username string) ([]Expense, error)
	// SetExpenses replaces the stored collection and persists it. It returns
	// false when the write failed, signaling the caller to roll back.
	SetExpenses(username string, expenses []Expense) bool
}

// Ledger is the per-session view over one account's expense collection,
// kept newest first. All mutations go through the store; in-memory state is
// never left in a shape whose persisted projection failed to apply.
type Ledger struct {
	store    ExpenseStore
	username string
	expenses []Expense
}

// NewLedger binds a ledger to an authenticated username and loads the
// collection eagerly. A failed or corrupt load is logged and degrades to an
// empty collection so one bad record does not brick the session.
func NewLedger(store ExpenseStore, username string) *Ledger {
	l := &Ledger{store: store, username: username}

	expenses, err := store.Expenses(username)
	if err != nil {
		logging.Logger.Errorf("failed to load expenses for %q, starting empty: %v", username, err)
		return l
	}
	for _, expense := range expenses {
		if !expense.valid() {
			logging.Logger.Errorf("invalid stored expense %q for %q, starting empty", expense.ID, username)
			return l
		}
	}

	l.expenses = expenses
	return l
}

func (l *Ledger) AddExpense(description string, rawAmount string) (Expense, error) {
	expense, err := NewExpense(description, rawAmount)
	if err != nil {
		return Expense{}, err
	}

	l.expenses = append([]Expense{expense}, l.expenses...) // newest first

	if !l.store.SetExpenses(l.username, l.expenses) {
		l.expenses = l.expenses[1:] // roll back the prepend
		return Expense{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrPersistence,
			Message: "Failed to save expense",
		}
	}
	return expense, nil
}

func (l *Ledger) UpdateExpense(id string, description string, rawAmount string) (Expense, error) {
	idx := l.indexOf(id)
	if idx == -1 {
		return Expense{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Expense not found",
		}
	}

	original := l.expenses[idx]
	updated, err := original.Updated(description, rawAmount)
	if err != nil {
		return Expense{}, err
	}

	l.expenses[idx] = updated

	if !l.store.SetExpenses(l.username, l.expenses) {
		l.expenses[idx] = original
		return Expense{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrPersistence,
			Message: "Failed to save expense",
		}
	}
	return updated, nil
}

func (l *Ledger) DeleteExpense(id string) (Expense, error) {
	idx := l.indexOf(id)
	if idx == -1 {
		return Expense{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Expense not found",
		}
	}

	deleted := l.expenses[idx]
	remaining := make([]Expense, 0, len(l.expenses)-1)
	remaining = append(remaining, l.expenses[:idx]...)
	remaining = append(remaining, l.expenses[idx+1:]...)
	l.expenses = remaining

	if !l.store.SetExpenses(l.username, l.expenses) {
		// Re-insert at the original index.
		restored := make([]Expense, 0, len(l.expenses)+1)
		restored = append(restored, l.expenses[:idx]...)
		restored = append(restored, deleted)
		restored = append(restored, l.expenses[idx:]...)
		l.expenses = restored
		return Expense{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrPersistence,
			Message: "Failed to delete expense",
		}
	}
	return deleted, nil
}

func (l *Ledger) Expense(id string) (Expense, bool) {
	idx := l.indexOf(id)
	if idx == -1 {
		return Expense{}, false
	}
	return l.expenses[idx], true
}

// ListExpenses returns a copy; callers cannot mutate ledger state through it.
func (l *Ledger) ListExpenses() []Expense {
	expenses := make([]Expense, len(l.expenses))
	copy(expenses, l.expenses)
	return expenses
}

func (l *Ledger) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, expense := range l.expenses {
		total = total.Add(expense.Amount)
	}
	return total
}

func (l *Ledger) Count() int {
	return len(l.expenses)
}

func (l *Ledger) indexOf(id string) int {
	for i, expense := range l.expenses {
		if expense.ID == id {
			return i
		}
	}
	return -1
}
