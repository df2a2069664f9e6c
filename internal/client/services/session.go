package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/auth"
	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/logging"
)

// SessionLifetime is fixed; sessions are not renewed without a new login.
const SessionLifetime = 24 * time.Hour

// SessionManager tracks the single logged-in user of the workspace. The
// credential table maps usernames to password digests.
type SessionManager struct {
	kv  *storage.KVStore
	now func() time.Time
	log logging.Logger

	onDelete func(ctx context.Context, user string)

	mu   sync.Mutex
	user string
}

func NewSessionManager(kv *storage.KVStore, log logging.Logger) *SessionManager {
	return &SessionManager{
		kv:  kv,
		now: time.Now,
		log: log.With("module", "session"),
	}
}

// WithClock replaces the time source.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// OnAccountDeleted registers the cleanup run after an account is removed.
// It runs after the credential is gone and its failures do not undo that.
func (m *SessionManager) OnAccountDeleted(fn func(ctx context.Context, user string)) {
	m.onDelete = fn
}

// CurrentUser reports who is logged in.
func (m *SessionManager) CurrentUser() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.user != ""
}

// Restore resumes the stored session if it has not expired and its token
// verifies. Otherwise the stored record is cleared.
func (m *SessionManager) Restore(ctx context.Context) (string, bool) {
	var s models.Session
	if !m.kv.GetJSON(ctx, storage.SessionKey, &s) {
		return "", false
	}

	now := m.now()
	if now.UnixMilli() >= s.ExpiresAt {
		m.log.Info(ctx, "session expired", "user", s.Username)
		m.kv.Remove(ctx, storage.SessionKey)
		return "", false
	}

	secret, ok := m.secret(ctx, false)
	if !ok {
		m.kv.Remove(ctx, storage.SessionKey)
		return "", false
	}
	user, err := auth.ParseToken(s.Token, secret, now)
	if err != nil || user != s.Username {
		m.log.Warn(ctx, "discarding session", "user", s.Username, "error", err)
		m.kv.Remove(ctx, storage.SessionKey)
		return "", false
	}

	m.setUser(user)
	return user, true
}

func (m *SessionManager) Login(ctx context.Context, username string, password []byte) error {
	users := m.users(ctx)

	stored, exists := users[username]
	if !exists {
		return common.ErrInvalidCredentials
	}
	ok, legacy := auth.VerifyPassword(stored, password)
	if !ok {
		return common.ErrInvalidCredentials
	}

	if legacy {
		users[username] = auth.HashPassword(password)
		if m.kv.SetJSON(ctx, storage.UsersKey, users) {
			m.log.Info(ctx, "migrated legacy credential", "user", username)
		}
	}

	return m.issue(ctx, username)
}

func (m *SessionManager) Signup(ctx context.Context, username string, password []byte) error {
	users := m.users(ctx)
	if _, exists := users[username]; exists {
		return common.ErrUsernameTaken
	}

	users[username] = auth.HashPassword(password)
	if !m.kv.SetJSON(ctx, storage.UsersKey, users) {
		return fmt.Errorf("%w: credential table", common.ErrPersist)
	}
	m.log.Info(ctx, "account created", "user", username)

	return m.issue(ctx, username)
}

func (m *SessionManager) Logout(ctx context.Context) {
	m.setUser("")
	m.kv.Remove(ctx, storage.SessionKey)
}

// UpdatePassword re-hashes the current user's credential. It does nothing
// when no one is logged in.
func (m *SessionManager) UpdatePassword(ctx context.Context, password []byte) error {
	user, ok := m.CurrentUser()
	if !ok {
		return nil
	}

	users := m.users(ctx)
	users[user] = auth.HashPassword(password)
	if !m.kv.SetJSON(ctx, storage.UsersKey, users) {
		return fmt.Errorf("%w: credential table", common.ErrPersist)
	}
	return nil
}

// DeleteAccount removes the current user's credential and logs out. It
// does nothing when no one is logged in.
func (m *SessionManager) DeleteAccount(ctx context.Context) error {
	user, ok := m.CurrentUser()
	if !ok {
		return nil
	}

	users := m.users(ctx)
	delete(users, user)
	if !m.kv.SetJSON(ctx, storage.UsersKey, users) {
		return fmt.Errorf("%w: credential table", common.ErrPersist)
	}
	m.Logout(ctx)
	m.log.Info(ctx, "account deleted", "user", user)

	if m.onDelete != nil {
		m.onDelete(ctx, user)
	}
	return nil
}

func (m *SessionManager) issue(ctx context.Context, username string) error {
	secret, ok := m.secret(ctx, true)
	if !ok {
		return fmt.Errorf("%w: session secret", common.ErrPersist)
	}

	now := m.now()
	token, err := auth.GenerateToken(username, secret, now, SessionLifetime)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	s := models.Session{
		Token:     token,
		Username:  username,
		ExpiresAt: now.Add(SessionLifetime).UnixMilli(),
	}
	if !m.kv.SetJSON(ctx, storage.SessionKey, s) {
		// the login still holds for this run
		m.log.Warn(ctx, "session not persisted", "user", username)
	}

	m.setUser(username)
	return nil
}

func (m *SessionManager) users(ctx context.Context) map[string]string {
	users := map[string]string{}
	if !m.kv.GetJSON(ctx, storage.UsersKey, &users) || users == nil {
		return map[string]string{}
	}
	return users
}

// secret returns the session signing key, creating it when create is set.
func (m *SessionManager) secret(ctx context.Context, create bool) ([]byte, bool) {
	var s string
	if m.kv.GetJSON(ctx, storage.SessionSecretKey, &s) && s != "" {
		return []byte(s), true
	}
	if !create {
		return nil, false
	}

	s, err := common.MakeRandHexString(32)
	if err != nil {
		m.log.Error(ctx, "failed to generate session secret", "error", err)
		return nil, false
	}
	if !m.kv.SetJSON(ctx, storage.SessionSecretKey, s) {
		return nil, false
	}
	return []byte(s), true
}

func (m *SessionManager) setUser(user string) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
}
