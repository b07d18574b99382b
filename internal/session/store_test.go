package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DJRivera25/blogctl/internal/api"
	"github.com/DJRivera25/blogctl/internal/errors"
)

type fakeResolver struct {
	details *api.UserDetails
	err     error
	calls   int
}

func (f *fakeResolver) GetUserDetails(ctx context.Context) (*api.UserDetails, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func newTestStore(t *testing.T, resolver *fakeResolver) (*Store, *FileStorage) {
	t.Helper()
	storage := NewFileStorage(t.TempDir())
	return NewStore(resolver, storage, nil), storage
}

func TestSetTokenResolvesAndPersists(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: "u1", Email: "a@example.com", IsAdmin: false}}
	store, storage := newTestStore(t, resolver)

	require.NoError(t, store.SetToken(context.Background(), "tok-1"))

	assert.Equal(t, "tok-1", store.Token())
	assert.Equal(t, Identity{ID: "u1", Email: "a@example.com"}, store.Identity())

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", persisted)
}

func TestSetTokenEmptyClearsEverything(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: "u1"}}
	store, storage := newTestStore(t, resolver)
	require.NoError(t, store.SetToken(context.Background(), "tok-1"))

	require.NoError(t, store.SetToken(context.Background(), ""))

	assert.Empty(t, store.Token())
	assert.False(t, store.Identity().Authenticated())

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestResolveFailureIsFailClosed(t *testing.T) {
	resolver := &fakeResolver{err: errors.NewUnauthorizedError("token rejected")}
	store, storage := newTestStore(t, resolver)

	err := store.SetToken(context.Background(), "stale-token")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))

	// The syntactically fine but unusable token must be gone everywhere.
	assert.Empty(t, store.Token())
	assert.False(t, store.Identity().Authenticated())

	persisted, loadErr := storage.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, persisted)
}

func TestResolveMalformedRecordIsFailClosed(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: ""}}
	store, _ := newTestStore(t, resolver)

	err := store.SetToken(context.Background(), "tok-1")
	require.Error(t, err)
	assert.Empty(t, store.Token())
	assert.False(t, store.Identity().Authenticated())
}

func TestInitRestoresPersistedSession(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: "u1", Email: "a@example.com", IsAdmin: true}}
	storage := NewFileStorage(t.TempDir())
	require.NoError(t, storage.Save("tok-persisted"))

	store := NewStore(resolver, storage, nil)
	require.NoError(t, store.Init(context.Background()))

	assert.Equal(t, "tok-persisted", store.Token())
	assert.Equal(t, Identity{ID: "u1", Email: "a@example.com", IsAdmin: true}, store.Identity())
	assert.Equal(t, 1, resolver.calls)
}

func TestInitWithoutPersistedTokenStaysAnonymous(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: "u1"}}
	store, _ := newTestStore(t, resolver)

	require.NoError(t, store.Init(context.Background()))

	assert.Empty(t, store.Token())
	assert.False(t, store.Identity().Authenticated())
	assert.Equal(t, 0, resolver.calls)
}

func TestLogoutIsIdempotent(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: "u1"}}
	store, storage := newTestStore(t, resolver)
	require.NoError(t, store.SetToken(context.Background(), "tok-1"))

	store.Logout()
	store.Logout()

	assert.Empty(t, store.Token())
	assert.False(t, store.Identity().Authenticated())

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestLogoutRemovesCredentialsFile(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: "u1"}}
	dir := t.TempDir()
	storage := NewFileStorage(dir)
	store := NewStore(resolver, storage, nil)
	require.NoError(t, store.SetToken(context.Background(), "tok-1"))

	store.Logout()

	// Removed, not merely nulled.
	_, statErr := os.Stat(filepath.Join(dir, "auth.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestResolveWithoutTokenClearsIdentity(t *testing.T) {
	resolver := &fakeResolver{details: &api.UserDetails{ID: "u1"}}
	store, _ := newTestStore(t, resolver)

	require.NoError(t, store.ResolveIdentity(context.Background()))
	assert.False(t, store.Identity().Authenticated())
	assert.Equal(t, 0, resolver.calls)
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	tok, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, storage.Save("tok-1"))
	tok, err = storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	require.NoError(t, storage.Clear())
	require.NoError(t, storage.Clear())
	tok, err = storage.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFileStorageCorruptFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.json"), []byte("not json"), 0o600))

	_, err := storage.Load()
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "corrupt")
}
