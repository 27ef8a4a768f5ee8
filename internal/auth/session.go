package auth

import (
	"encoding/json"
	"time"

	appErrors "expensetracker/errors"
	"expensetracker/internal/storage"
	"expensetracker/logging"
)

// Session marks the single active login. At most one exists process-wide,
// and it survives restarts until Logout.
type Session struct {
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}

// Authenticator is what the session manager needs from the account store.
type Authenticator interface {
	Authenticate(username string, password string) (string, error)
	CreateAccount(username string, password string) (string, error)
}

type SessionManager struct {
	kv       storage.Store
	accounts Authenticator
	current  *Session
}

// NewSessionManager loads any persisted session. An unreadable or corrupt
// session document is logged and treated as logged out.
func NewSessionManager(kv storage.Store, accounts Authenticator) *SessionManager {
	sm := &SessionManager{kv: kv, accounts: accounts}

	doc, ok, err := kv.Get(storage.SessionKey)
	if err != nil {
		logging.Logger.Errorf("failed to load session, starting logged out: %v", err)
		return sm
	}
	if !ok {
		return sm
	}

	var session Session
	if err := json.Unmarshal([]byte(doc), &session); err != nil {
		logging.Logger.Errorf("corrupt session document, starting logged out: %v", err)
		return sm
	}

	sm.current = &session
	return sm
}

func (sm *SessionManager) Login(username string, password string) (string, error) {
	authenticated, err := sm.accounts.Authenticate(username, password)
	if err != nil {
		return "", err
	}

	session := Session{Username: authenticated, LoginTime: time.Now().UTC()}
	doc, err := json.Marshal(session)
	if err == nil {
		err = sm.kv.Set(storage.SessionKey, string(doc))
	}
	if err != nil {
		// Authentication succeeded; only the session write failed. That is a
		// distinct failure class from bad credentials.
		logging.Logger.Errorf("failed to persist session for %q: %v", authenticated, err)
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrSession,
			Message: "Failed to create session",
		}
	}

	sm.current = &session
	return authenticated, nil
}

func (sm *SessionManager) Signup(username string, password string, confirmPassword string) (string, error) {
	if password != confirmPassword {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrValidation,
			Message: "Passwords do not match",
		}
	}

	created, err := sm.accounts.CreateAccount(username, password)
	if err != nil {
		return "", err
	}
	return sm.Login(created, password)
}

// Logout clears the session unconditionally and is safe to call repeatedly.
// A failed delete is logged; the in-memory session is gone either way.
func (sm *SessionManager) Logout() {
	sm.current = nil
	if err := sm.kv.Delete(storage.SessionKey); err != nil {
		logging.Logger.Warnf("failed to clear persisted session: %v", err)
	}
}

func (sm *SessionManager) IsActive() bool {
	return sm.current != nil
}

// CurrentUsername returns the logged-in username, or "" when logged out.
func (sm *SessionManager) CurrentUsername() string {
	if sm.current == nil {
		return ""
	}
	return sm.current.Username
}
