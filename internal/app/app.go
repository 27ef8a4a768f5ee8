// Package app is the composition root the UI layer talks to. It replaces
// the original ambient globals with explicit ownership: one App holds the
// persistence medium, the account store, the session manager and, while a
// session is active, the ledger bound to it.
package app

import (
	"fmt"

	appErrors "expensetracker/errors"
	"expensetracker/internal/accounts"
	"expensetracker/internal/auth"
	"expensetracker/internal/config"
	"expensetracker/internal/ledger"
	"expensetracker/internal/storage"
	"expensetracker/logging"
)

type App struct {
	kv       storage.Store
	accounts *accounts.Store
	sessions *auth.SessionManager
	ledger   *ledger.Ledger
}

// New wires an App over a caller-supplied medium. If a persisted session is
// still active its ledger is rebound, so a login survives restarts.
func New(kv storage.Store) *App {
	store := accounts.NewStore(kv)
	sessions := auth.NewSessionManager(kv, store)

	a := &App{kv: kv, accounts: store, sessions: sessions}
	if username := sessions.CurrentUsername(); username != "" {
		a.ledger = ledger.NewLedger(store, username)
	}
	return a
}

// Open builds the storage backend selected by cfg and wires an App over it.
func Open(cfg *config.Config) (*App, error) {
	var kv storage.Store

	switch cfg.StorageBackend {
	case "sqlite":
		sqliteStore, err := storage.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage backend: %w", err)
		}
		kv = sqliteStore
	case "memory":
		kv = storage.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
	}

	a := New(kv)
	logging.Logger.Infof("storage backend %q ready, %d account(s) loaded", cfg.StorageBackend, a.accounts.Count())
	return a, nil
}

func (a *App) Signup(username string, password string, confirmPassword string) (string, error) {
	created, err := a.sessions.Signup(username, password, confirmPassword)
	if err != nil {
		return "", err
	}
	a.ledger = ledger.NewLedger(a.accounts, created)
	return created, nil
}

func (a *App) Login(username string, password string) (string, error) {
	authenticated, err := a.sessions.Login(username, password)
	if err != nil {
		return "", err
	}
	a.ledger = ledger.NewLedger(a.accounts, authenticated)
	return authenticated, nil
}

// Logout ends the session and drops the bound ledger. Idempotent.
func (a *App) Logout() {
	a.sessions.Logout()
	a.ledger = nil
}

func (a *App) IsActive() bool {
	return a.sessions.IsActive()
}

func (a *App) CurrentUsername() string {
	return a.sessions.CurrentUsername()
}

// Ledger returns the expense surface for the active session.
func (a *App) Ledger() (*ledger.Ledger, error) {
	if a.ledger == nil {
		return nil, appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "No active session",
		}
	}
	return a.ledger, nil
}

func (a *App) Close() error {
	return a.kv.Close()
}
