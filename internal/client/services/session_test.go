package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/auth"
	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupThenLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := e.sessions()

	require.NoError(t, m.Signup(ctx, "alice", []byte("pw")))
	user, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", user)

	var users map[string]string
	require.True(t, e.kv.GetJSON(ctx, storage.UsersKey, &users))
	assert.Equal(t, auth.HashPassword([]byte("pw")), users["alice"])

	var s models.Session
	require.True(t, e.kv.GetJSON(ctx, storage.SessionKey, &s))
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, e.clock.Now().Add(24*time.Hour).UnixMilli(), s.ExpiresAt)

	m.Logout(ctx)
	_, ok = m.CurrentUser()
	assert.False(t, ok)
	_, ok = e.kv.Get(ctx, storage.SessionKey)
	assert.False(t, ok)

	require.NoError(t, m.Login(ctx, "alice", []byte("pw")))
	user, _ = m.CurrentUser()
	assert.Equal(t, "alice", user)
}

func TestSignup_UsernameTaken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := e.sessions()

	require.NoError(t, m.Signup(ctx, "bob", []byte("a")))
	require.ErrorIs(t, m.Signup(ctx, "bob", []byte("b")), common.ErrUsernameTaken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := e.sessions()

	require.ErrorIs(t, m.Login(ctx, "nobody", []byte("x")), common.ErrInvalidCredentials)

	require.NoError(t, m.Signup(ctx, "carol", []byte("right")))
	m.Logout(ctx)
	require.ErrorIs(t, m.Login(ctx, "carol", []byte("wrong")), common.ErrInvalidCredentials)
	_, ok := m.CurrentUser()
	assert.False(t, ok)
}

func TestLogin_MigratesLegacyPlaintext(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := e.sessions()

	require.True(t, e.kv.SetJSON(ctx, storage.UsersKey, map[string]string{"dave": "letmein"}))

	require.NoError(t, m.Login(ctx, "dave", []byte("letmein")))

	var users map[string]string
	require.True(t, e.kv.GetJSON(ctx, storage.UsersKey, &users))
	assert.Equal(t, auth.HashPassword([]byte("letmein")), users["dave"])

	m.Logout(ctx)
	require.NoError(t, m.Login(ctx, "dave", []byte("letmein")))
	require.True(t, e.kv.GetJSON(ctx, storage.UsersKey, &users))
	assert.Equal(t, auth.HashPassword([]byte("letmein")), users["dave"])
}

func TestRestore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.sessions().Signup(ctx, "erin", []byte("pw")))

	e.clock.Advance(23 * time.Hour)
	m := e.sessions()
	user, ok := m.Restore(ctx)
	require.True(t, ok)
	assert.Equal(t, "erin", user)

	e.clock.Advance(time.Hour)
	m = e.sessions()
	_, ok = m.Restore(ctx)
	assert.False(t, ok)
	_, ok = e.kv.Get(ctx, storage.SessionKey)
	assert.False(t, ok, "expired session record is cleared")
}

func TestRestore_RejectsForgedSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.sessions().Signup(ctx, "frank", []byte("pw")))

	var s models.Session
	require.True(t, e.kv.GetJSON(ctx, storage.SessionKey, &s))
	s.Username = "mallory"
	require.True(t, e.kv.SetJSON(ctx, storage.SessionKey, s))

	_, ok := e.sessions().Restore(ctx)
	assert.False(t, ok)
}

func TestRestore_NoSession(t *testing.T) {
	e := newEnv(t)
	_, ok := e.sessions().Restore(context.Background())
	assert.False(t, ok)
}

func TestUpdatePassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := e.sessions()

	require.NoError(t, m.UpdatePassword(ctx, []byte("ignored")))
	var users map[string]string
	assert.False(t, e.kv.GetJSON(ctx, storage.UsersKey, &users), "no-op when logged out")

	require.NoError(t, m.Signup(ctx, "gina", []byte("old")))
	require.NoError(t, m.UpdatePassword(ctx, []byte("new")))
	m.Logout(ctx)

	require.ErrorIs(t, m.Login(ctx, "gina", []byte("old")), common.ErrInvalidCredentials)
	require.NoError(t, m.Login(ctx, "gina", []byte("new")))
}

func TestDeleteAccount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := e.sessions()

	var purged []string
	m.OnAccountDeleted(func(_ context.Context, user string) { purged = append(purged, user) })

	require.NoError(t, m.DeleteAccount(ctx))
	assert.Empty(t, purged)

	require.NoError(t, m.Signup(ctx, "hank", []byte("pw")))
	require.NoError(t, m.DeleteAccount(ctx))

	_, ok := m.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, []string{"hank"}, purged)
	require.ErrorIs(t, m.Login(ctx, "hank", []byte("pw")), common.ErrInvalidCredentials)
}
