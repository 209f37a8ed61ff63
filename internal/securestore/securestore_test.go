package securestore

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	Token   string            `json:"token"`
	Expires int64             `json:"expires"`
	Scopes  []string          `json:"scopes"`
	Extra   map[string]string `json:"extra"`
}

func TestStore_RoundTrip(t *testing.T) {
	store, err := Open(t.TempDir(), "secret")
	require.NoError(t, err)

	want := session{
		Token:   "eyJhbGciOiJSUzI1NiJ9.payload.sig",
		Expires: 1735689600,
		Scopes:  []string{"openid", "email"},
		Extra:   map[string]string{"hd": "example.com"},
	}
	require.NoError(t, store.Set("session", want))

	var got session
	found, err := store.Get("session", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestStore_MissingKey(t *testing.T) {
	store, err := Open(t.TempDir(), "secret")
	require.NoError(t, err)

	var got string
	found, err := store.Get("nothing", &got)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestStore_FileIsPrivateAndSealed(t *testing.T) {
	store, err := Open(t.TempDir(), "secret")
	require.NoError(t, err)
	require.NoError(t, store.Set("token", "plain-token-value"))

	info, err := os.Stat(store.path("token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(store.path("token"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "plain-token-value")

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_WrongSecret(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, "secret")
	require.NoError(t, err)
	require.NoError(t, store.Set("token", "value"))

	other, err := Open(dir, "different")
	require.NoError(t, err)

	var got string
	_, err = other.Get("token", &got)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestStore_OverwriteAndDelete(t *testing.T) {
	store, err := Open(t.TempDir(), "secret")
	require.NoError(t, err)

	require.NoError(t, store.Set("token", "first"))
	require.NoError(t, store.Set("token", "second"))

	var got string
	_, err = store.Get("token", &got)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	require.NoError(t, store.Delete("token"))
	require.NoError(t, store.Delete("token"))
	found, err := store.Get("token", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpen_RequiresSecret(t *testing.T) {
	_, err := Open(t.TempDir(), "")
	assert.Error(t, err)
}
