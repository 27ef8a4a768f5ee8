// Package accounts owns the durable username → account mapping, including
// each account's embedded expense collection.
package accounts

import (
	"encoding/json"
	"strings"
	"time"

	appErrors "expensetracker/errors"
	"expensetracker/internal/auth"
	"expensetracker/internal/ledger"
	"expensetracker/internal/storage"
	"expensetracker/logging"
)

const (
	MIN_USERNAME_LENGTH = 3
	MAX_USERNAME_LENGTH = 20
	MIN_PASSWORD_LENGTH = 6
)

type Account struct {
	Username     string           `json:"username"`
	PasswordHash string           `json:"passwordHash"`
	CreatedAt    time.Time        `json:"createdAt"`
	Expenses     []ledger.Expense `json:"expenses"`
}

// Store loads the users document once at construction and keeps it in
// memory; every mutation rewrites the whole document. When a write fails the
// in-memory map is rolled back first, so memory and storage never diverge.
type Store struct {
	kv    storage.Store
	users map[string]Account
}

func NewStore(kv storage.Store) *Store {
	s := &Store{kv: kv, users: make(map[string]Account)}

	doc, ok, err := kv.Get(storage.UsersKey)
	if err != nil {
		logging.Logger.Errorf("failed to load users, starting empty: %v", err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(doc), &s.users); err != nil {
		logging.Logger.Errorf("corrupt users document, starting empty: %v", err)
		s.users = make(map[string]Account)
	}
	return s
}

// NormalizeUsername trims and lowercases; all lookups key on the normalized
// form, which makes uniqueness case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *Store) CreateAccount(username string, password string) (string, error) {
	normalized := NormalizeUsername(username)

	if len(normalized) < MIN_USERNAME_LENGTH || len(normalized) > MAX_USERNAME_LENGTH {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrValidation,
			Message: "Username must be 3-20 characters long",
		}
	}
	if len(password) < MIN_PASSWORD_LENGTH {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrValidation,
			Message: "Password must be at least 6 characters long",
		}
	}
	if _, exists := s.users[normalized]; exists {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: "Username already exists",
		}
	}

	s.users[normalized] = Account{
		Username:     normalized,
		PasswordHash: auth.HashPassword(password),
		CreatedAt:    time.Now().UTC(),
		Expenses:     []ledger.Expense{},
	}

	if err := s.persist(); err != nil {
		delete(s.users, normalized)
		logging.Logger.Errorf("failed to persist new account %q: %v", normalized, err)
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrPersistence,
			Message: "Failed to save user data",
		}
	}
	return normalized, nil
}

func (s *Store) Authenticate(username string, password string) (string, error) {
	normalized := NormalizeUsername(username)

	account, ok := s.users[normalized]
	if !ok {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Username not found",
		}
	}
	if !auth.ComparePasswords(account.PasswordHash, password) {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Invalid password",
		}
	}
	return normalized, nil
}

// Expenses returns a copy of the account's collection, newest first.
func (s *Store) Expenses(username string) ([]ledger.Expense, error) {
	account, ok := s.users[username]
	if !ok {
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: "Username not found",
		}
	}

	expenses := make([]ledger.Expense, len(account.Expenses))
	copy(expenses, account.Expenses)
	return expenses, nil
}

// SetExpenses replaces the account's collection and persists the users
// document. It returns false, with the previous collection restored, when
// the user is unknown or the write fails.
func (s *Store) SetExpenses(username string, expenses []ledger.Expense) bool {
	account, ok := s.users[username]
	if !ok {
		return false
	}

	previous := account.Expenses
	account.Expenses = make([]ledger.Expense, len(expenses))
	copy(account.Expenses, expenses)
	s.users[username] = account

	if err := s.persist(); err != nil {
		account.Expenses = previous
		s.users[username] = account
		logging.Logger.Errorf("failed to persist expenses for %q: %v", username, err)
		return false
	}
	return true
}

// Count reports how many accounts are loaded.
func (s *Store) Count() int {
	return len(s.users)
}

func (s *Store) persist() error {
	doc, err := json.Marshal(s.users)
	if err != nil {
		return err
	}
	return s.kv.Set(storage.UsersKey, string(doc))
}
