package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Login(t *testing.T) {
	a := NewAuth("admin", "pw")

	_, _, err := a.login("admin", "nope")
	assert.ErrorIs(t, err, errUnauthorized)
	_, _, err = a.login("Admin", "pw")
	assert.ErrorIs(t, err, errUnauthorized)

	token, id, err := a.login("admin", "pw")
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, "admin", id.Username)

	got, ok := a.lookup(token)
	require.True(t, ok)
	assert.Equal(t, id, got)

	a.logout(token)
	_, ok = a.lookup(token)
	assert.False(t, ok)
}

func TestAuth_DisabledWithoutCredentials(t *testing.T) {
	a := NewAuth("", "")
	_, _, err := a.login("", "")
	assert.ErrorIs(t, err, errUnauthorized)
}

func TestAuth_SessionExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewAuth("admin", "pw")
	a.now = func() time.Time { return now }

	token, _, err := a.login("admin", "pw")
	require.NoError(t, err)

	now = now.Add(sessionTTL + time.Second)
	_, ok := a.lookup(token)
	assert.False(t, ok)
}

func TestAuth_LoginSweepsExpiredSessions(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewAuth("admin", "pw")
	a.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_, _, err := a.login("admin", "pw")
		require.NoError(t, err)
	}
	require.Len(t, a.sessions, 3)

	now = now.Add(sessionTTL + time.Second)
	token, _, err := a.login("admin", "pw")
	require.NoError(t, err)
	assert.Len(t, a.sessions, 1)
	_, ok := a.lookup(token)
	assert.True(t, ok)
}
