package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/spotsecure/internal/session"
)

func TestAuthenticate(t *testing.T) {
	assert.True(t, session.Authenticate("admin", "secret"))
	assert.False(t, session.Authenticate("", "secret"))
	assert.False(t, session.Authenticate("admin", ""))
	assert.False(t, session.Authenticate("  ", "  "))
}

func TestLoginLogout(t *testing.T) {
	dir := t.TempDir()
	s := session.NewFile(filepath.Join(dir, "nested"))

	assert.False(t, s.LoggedIn())
	assert.ErrorIs(t, s.Require(), session.ErrNotLoggedIn)

	now := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Login("admin", "secret", now))
	assert.True(t, s.LoggedIn())
	assert.NoError(t, s.Require())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "admin\n2026-02-27T09:00:00Z\n", string(data))
	assert.NotContains(t, string(data), "secret")

	require.NoError(t, s.Logout())
	assert.False(t, s.LoggedIn())
	assert.NoError(t, s.Logout())
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	s := session.NewFile(t.TempDir())
	assert.ErrorIs(t, s.Login("admin", "", time.Now()), session.ErrInvalidCredentials)
	assert.False(t, s.LoggedIn())
}
