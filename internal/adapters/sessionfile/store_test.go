package sessionfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilpconnect/tilp/internal/domain"
)

func newSession(expiresIn time.Duration) *domain.Session {
	now := time.Now().Truncate(time.Second)
	user := domain.User{Username: "parent1", Role: domain.RoleParent, ChildLink: "Mia"}
	return domain.NewSession("sess-1", user, now, now.Add(expiresIn))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "session.jwt"), []byte("secret"))
	saved := newSession(time.Hour)

	require.NoError(t, store.Save(ctx, saved))
	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	assert.True(t, loaded.Authenticated())
	assert.Equal(t, "sess-1", loaded.ID)
	assert.Equal(t, "parent1", loaded.Username)
	assert.Equal(t, domain.RoleParent, loaded.Role)
	assert.Equal(t, "Mia", loaded.ChildFilter())
	assert.True(t, saved.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestSaveLoad_KeepsChildFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "session.jwt"), []byte("secret"))
	now := time.Now().Truncate(time.Second)
	admin := domain.NewSession("sess-2", domain.User{Username: "adminuser", Role: domain.RoleAdmin, ChildLink: domain.ChildLinkAll}, now, now.Add(time.Hour))
	require.NoError(t, admin.SetChildFilter("Leo"))

	require.NoError(t, store.Save(ctx, admin))
	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Leo", loaded.ChildFilter())
}

func TestLoad_Missing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.jwt"), []byte("secret"))

	_, err := store.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestLoad_Expired(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "session.jwt"), []byte("secret"))
	require.NoError(t, store.Save(ctx, newSession(-time.Minute)))

	_, err := store.Load(ctx)

	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Contains(t, err.Error(), "expired")
}

func TestLoad_WrongSecret(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.jwt")
	require.NoError(t, NewStore(path, []byte("secret")).Save(ctx, newSession(time.Hour)))

	_, err := NewStore(path, []byte("other")).Load(ctx)

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSave_RejectsAnonymous(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.jwt"), []byte("secret"))
	sess := newSession(time.Hour)
	sess.Invalidate()

	assert.ErrorIs(t, store.Save(context.Background(), sess), domain.ErrNotAuthenticated)
}

func TestClear_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.jwt")
	store := NewStore(path, []byte("secret"))
	require.NoError(t, store.Save(ctx, newSession(time.Hour)))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	assert.NoFileExists(t, path)
}

func TestLoadOrCreateSecret(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "session.key")

	env, err := LoadOrCreateSecret(keyPath, "from-env")
	require.NoError(t, err)
	assert.Equal(t, []byte("from-env"), env)
	assert.NoFileExists(t, keyPath)

	first, err := LoadOrCreateSecret(keyPath, "")
	require.NoError(t, err)
	assert.Len(t, first, 64)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	second, err := LoadOrCreateSecret(keyPath, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
