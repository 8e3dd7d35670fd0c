package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewStore(path), path
}

func TestSetAndClearKeepTokenAndUserTogether(t *testing.T) {
	store, path := tempStore(t)

	user := User{ID: "u1", Name: "Priya Sharma", Email: "priya@example.com", Role: "admin"}
	require.NoError(t, store.Set("tok-123", user))

	assert.Equal(t, "tok-123", store.Token())
	got, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, user, got)

	// A fresh store sees the persisted session.
	reloaded := NewStore(path)
	assert.Equal(t, "tok-123", reloaded.Token())
	_, ok = reloaded.User()
	assert.True(t, ok)

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	_, ok = store.User()
	assert.False(t, ok)

	// Cleared on disk too, not just in memory.
	reloaded = NewStore(path)
	assert.Empty(t, reloaded.Token())
}

func TestThemeSurvivesLogout(t *testing.T) {
	store, path := tempStore(t)

	require.NoError(t, store.SetTheme("dark"))
	require.NoError(t, store.Set("tok", User{ID: "u1"}))
	require.NoError(t, store.Clear())

	assert.Equal(t, "dark", NewStore(path).Theme())
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	store, _ := tempStore(t)
	assert.Error(t, store.SetTheme("sepia"))
}

func TestTokenExpiryReadsUnverifiedClaim(t *testing.T) {
	store, _ := tempStore(t)

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	require.NoError(t, store.Set(signed, User{ID: "u1"}))

	got, ok := store.TokenExpiry()
	require.True(t, ok)
	assert.WithinDuration(t, exp, got, time.Second)
}

func TestTokenExpiryMissingWhenSignedOut(t *testing.T) {
	store, _ := tempStore(t)
	_, ok := store.TokenExpiry()
	assert.False(t, ok)
}

func TestMissingFileMeansSignedOut(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope", "session.json"))
	assert.Empty(t, store.Token())
}
