package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug)

	logger.Info("login", "username", "adminuser", "password", "hunter2", "github_token", "ghp_x", "password_hash", "abc")

	out := buf.String()
	assert.Contains(t, out, "adminuser")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "ghp_x")
	assert.NotContains(t, out, `"abc"`)
	assert.Contains(t, out, "[redacted]")
}

func TestRotateLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.log", "b.log", "c.log", "notes.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}

	require.NoError(t, rotateLogs(dir, 2))

	assert.NoFileExists(t, filepath.Join(dir, "a.log"))
	assert.NoFileExists(t, filepath.Join(dir, "b.log"))
	assert.FileExists(t, filepath.Join(dir, "c.log"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestInitialize_DebugFile(t *testing.T) {
	t.Setenv("TILP_DEBUG", "")
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	require.NoError(t, Initialize(false, path, DefaultMaxLogFiles))
	Logger.Info("hello", "token", "secret-value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.NotContains(t, string(data), "secret-value")
}
