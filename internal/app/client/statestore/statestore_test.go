package statestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credvault/internal/app/client/devicelock"
	"credvault/internal/app/client/flow"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadSession()
	assert.ErrorIs(t, err, ErrNoSession)

	session := flow.Session{Token: "tok-1", UserID: "u-1", Email: "a@b.com"}
	require.NoError(t, store.SaveSession(session))

	loaded, err := store.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestSaveSessionReplaces(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveSession(flow.Session{Token: "old", UserID: "u-1", Email: "a@b.com"}))
	require.NoError(t, store.SaveSession(flow.Session{Token: "new", UserID: "u-2", Email: "c@d.com"}))

	loaded, err := store.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "new", loaded.Token)
	assert.Equal(t, "u-2", loaded.UserID)
}

func TestClearSession(t *testing.T) {
	store := newTestStore(t)

	// Clearing an empty store is fine.
	require.NoError(t, store.ClearSession())

	require.NoError(t, store.SaveSession(flow.Session{Token: "tok", UserID: "u", Email: "a@b.com"}))
	require.NoError(t, store.ClearSession())

	_, err := store.LoadSession()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestVerifierRoundTrip(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadVerifier()
	assert.ErrorIs(t, err, devicelock.ErrNotEnrolled)

	enrolled, err := store.Enrolled()
	require.NoError(t, err)
	assert.False(t, enrolled)

	verifier, err := devicelock.Enroll("pass123")
	require.NoError(t, err)
	require.NoError(t, store.SaveVerifier(verifier))

	loaded, err := store.LoadVerifier()
	require.NoError(t, err)
	assert.Equal(t, verifier, loaded)
	assert.True(t, loaded.Verify("pass123"))

	enrolled, err = store.Enrolled()
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(flow.Session{Token: "tok", UserID: "u", Email: "a@b.com"}))
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token)
}
