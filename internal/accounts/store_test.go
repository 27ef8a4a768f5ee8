package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "expensetracker/errors"
	"expensetracker/internal/ledger"
	"expensetracker/internal/storage"
)

// flakyStore fails writes on demand to exercise the rollback paths.
type flakyStore struct {
	*storage.MemoryStore
	failSet bool
}

func (f *flakyStore) Set(key string, value string) error {
	if f.failSet {
		return errors.New("write refused")
	}
	return f.MemoryStore.Set(key, value)
}

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		password    string
		want        string
		wantErrCode string
	}{
		{name: "valid", username: "bob", password: "password123", want: "bob"},
		{name: "normalizes trim and case", username: "  Alice ", password: "secret1", want: "alice"},
		{name: "username too short", username: "ab", password: "password123", wantErrCode: appErrors.ErrValidation},
		{name: "username too long", username: "abcdefghijklmnopqrstu", password: "password123", wantErrCode: appErrors.ErrValidation},
		{name: "password too short", username: "carol", password: "12345", wantErrCode: appErrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(storage.NewMemoryStore())

			got, err := s.CreateAccount(tt.username, tt.password)

			if tt.wantErrCode != "" {
				if !appErrors.HasCode(err, tt.wantErrCode) {
					t.Fatalf("CreateAccount() error = %v, want code %s", err, tt.wantErrCode)
				}
				if s.Count() != 0 {
					t.Errorf("account count = %d after rejected create, want 0", s.Count())
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateAccount() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("normalized username = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUsernameConflictIsCaseInsensitive(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())

	if _, err := s.CreateAccount("Alice", "secret1"); err != nil {
		t.Fatal(err)
	}

	_, err := s.CreateAccount("alice", "other12")
	if !appErrors.HasCode(err, appErrors.ErrConflict) {
		t.Errorf("CreateAccount(duplicate) error = %v, want code %s", err, appErrors.ErrConflict)
	}
}

func TestAuthenticate(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	if _, err := s.CreateAccount("bob", "password123"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		username    string
		password    string
		want        string
		wantErrCode string
	}{
		{name: "valid", username: "bob", password: "password123", want: "bob"},
		{name: "case insensitive lookup", username: "BOB", password: "password123", want: "bob"},
		{name: "unknown user", username: "mallory", password: "password123", wantErrCode: appErrors.ErrNotFound},
		{name: "wrong password", username: "bob", password: "wrongpass", wantErrCode: appErrors.ErrAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Authenticate(tt.username, tt.password)

			if tt.wantErrCode != "" {
				if !appErrors.HasCode(err, tt.wantErrCode) {
					t.Fatalf("Authenticate() error = %v, want code %s", err, tt.wantErrCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("Authenticate() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Authenticate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateAccountRollsBackOnPersistFailure(t *testing.T) {
	kv := &flakyStore{MemoryStore: storage.NewMemoryStore(), failSet: true}
	s := NewStore(kv)

	_, err := s.CreateAccount("bob", "password123")
	require.True(t, appErrors.HasCode(err, appErrors.ErrPersistence), "error = %v", err)

	// The account must not survive in memory either.
	require.Equal(t, 0, s.Count())
	_, err = s.Authenticate("bob", "password123")
	require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound), "error = %v", err)
}

func TestSetExpensesRollsBackOnPersistFailure(t *testing.T) {
	kv := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	s := NewStore(kv)
	_, err := s.CreateAccount("bob", "password123")
	require.NoError(t, err)

	first, err := ledger.NewExpense("Coffee", "4.50")
	require.NoError(t, err)
	require.True(t, s.SetExpenses("bob", []ledger.Expense{first}))

	second, err := ledger.NewExpense("Lunch", "12.00")
	require.NoError(t, err)

	kv.failSet = true
	require.False(t, s.SetExpenses("bob", []ledger.Expense{second, first}))

	stored, err := s.Expenses("bob")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, first.ID, stored[0].ID)
}

func TestSetExpensesUnknownUser(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	require.False(t, s.SetExpenses("nobody", nil))

	_, err := s.Expenses("nobody")
	require.True(t, appErrors.HasCode(err, appErrors.ErrNotFound), "error = %v", err)
}

func TestExpensesRoundTrip(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := NewStore(kv)
	_, err := s.CreateAccount("bob", "password123")
	require.NoError(t, err)

	coffee, err := ledger.NewExpense("Coffee", "4.50")
	require.NoError(t, err)
	lunch, err := ledger.NewExpense("Lunch", "12.00")
	require.NoError(t, err)
	saved := []ledger.Expense{lunch, coffee}
	require.True(t, s.SetExpenses("bob", saved))

	// A fresh store over the same medium sees the identical collection.
	reloaded := NewStore(kv)
	got, err := reloaded.Expenses("bob")
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range saved {
		require.Equal(t, saved[i].ID, got[i].ID)
		require.Equal(t, saved[i].Description, got[i].Description)
		require.Equal(t, saved[i].DisplayDate, got[i].DisplayDate)
		require.True(t, saved[i].Amount.Equal(got[i].Amount),
			"amount %s != %s", saved[i].Amount, got[i].Amount)
		require.True(t, saved[i].Timestamp.Equal(got[i].Timestamp),
			"timestamp %v != %v", saved[i].Timestamp, got[i].Timestamp)
	}
}

func TestCorruptUsersDocumentStartsEmpty(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.UsersKey, "{not json"))

	s := NewStore(kv)
	require.Equal(t, 0, s.Count())
}
