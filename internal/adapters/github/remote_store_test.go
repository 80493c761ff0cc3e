package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilpconnect/tilp/internal/domain"
)

// fakeContents is a minimal in-memory stand-in for the GitHub contents API
type fakeContents struct {
	mu       sync.Mutex
	files    map[string]fakeFile
	next     int
	failures int // 503 responses to serve before behaving
	puts     []putRequest
}

type fakeFile struct {
	content []byte
	sha     string
}

type putRequest struct {
	Branch  string `json:"branch"`
	Content string `json:"content"`
	Message string `json:"message"`
	SHA     string `json:"sha"`
}

const contentsPrefix = "/repos/acme/records/contents/"

func (f *fakeContents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
		return
	}
	if f.failures > 0 {
		f.failures--
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"message":"unavailable"}`)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, contentsPrefix)
	switch r.Method {
	case http.MethodGet:
		file, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"type":     "file",
			"path":     path,
			"sha":      file.sha,
			"size":     len(file.content),
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString(file.content),
		})
	case http.MethodPut:
		var req putRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.puts = append(f.puts, req)

		existing, exists := f.files[path]
		switch {
		case req.SHA == "" && exists:
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"message":"Invalid request. \"sha\" wasn't supplied."}`)
			return
		case req.SHA != "" && (!exists || existing.sha != req.SHA):
			w.WriteHeader(http.StatusConflict)
			fmt.Fprintf(w, `{"message":"%s does not match"}`, path)
			return
		}

		content, _ := base64.StdEncoding.DecodeString(req.Content)
		f.next++
		sha := fmt.Sprintf("sha-%d", f.next)
		f.files[path] = fakeFile{content: content, sha: sha}

		if !exists {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]any{"path": path, "sha": sha},
			"commit":  map[string]any{"sha": "commit-" + sha},
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestRemote(t *testing.T, token string) (*RemoteStore, *fakeContents) {
	t.Helper()
	fake := &fakeContents{files: make(map[string]fakeFile)}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	store, err := NewRemoteStore(Config{
		BaseURL: server.URL,
		Branch:  "main",
		Repo:    "acme/records",
		Token:   token,
	})
	require.NoError(t, err)
	return store, fake
}

func TestNewRemoteStore_RequiresConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no token", Config{Repo: "acme/records"}},
		{"no repo", Config{Token: "t"}},
		{"repo without owner", Config{Repo: "records", Token: "t"}},
		{"repo with extra segments", Config{Repo: "acme/records/data", Token: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRemoteStore(tt.cfg)
			assert.ErrorIs(t, err, domain.ErrAuthenticationMissing)
		})
	}
}

func TestStat(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestRemote(t, "test-token")
	fake.files["data/users.csv"] = fakeFile{content: []byte("username\n"), sha: "abc"}

	file, err := store.Stat(ctx, "data/users.csv")
	require.NoError(t, err)
	assert.Equal(t, "abc", file.Marker)
	assert.Equal(t, int64(9), file.Size)

	_, err = store.Stat(ctx, "data/missing.csv")
	assert.ErrorIs(t, err, domain.ErrRemoteNotFound)
}

func TestPut_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestRemote(t, "test-token")

	sha1, err := store.Put(ctx, "data/users.csv", []byte("v1"), "AUTO-SAVE: Created users.csv", "")
	require.NoError(t, err)

	sha2, err := store.Put(ctx, "data/users.csv", []byte("v2"), "AUTO-SAVE: Updated users.csv", sha1)
	require.NoError(t, err)
	assert.NotEqual(t, sha1, sha2)

	assert.Equal(t, []byte("v2"), fake.files["data/users.csv"].content)
	require.Len(t, fake.puts, 2)
	assert.Equal(t, "main", fake.puts[0].Branch)
	assert.Empty(t, fake.puts[0].SHA)
	assert.Equal(t, sha1, fake.puts[1].SHA)
	assert.Equal(t, "AUTO-SAVE: Updated users.csv", fake.puts[1].Message)
}

func TestPut_Conflicts(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestRemote(t, "test-token")
	fake.files["data/progress.csv"] = fakeFile{content: []byte("x"), sha: "current"}

	t.Run("create over existing file", func(t *testing.T) {
		_, err := store.Put(ctx, "data/progress.csv", []byte("y"), "msg", "")
		assert.ErrorIs(t, err, domain.ErrRemoteWriteConflict)
	})

	t.Run("stale marker", func(t *testing.T) {
		_, err := store.Put(ctx, "data/progress.csv", []byte("y"), "msg", "stale")
		require.ErrorIs(t, err, domain.ErrRemoteWriteConflict)
		assert.Contains(t, err.Error(), "data/progress.csv")
	})

	assert.Equal(t, []byte("x"), fake.files["data/progress.csv"].content)
}

func TestPut_ErrorClassification(t *testing.T) {
	ctx := context.Background()

	t.Run("bad token", func(t *testing.T) {
		store, _ := newTestRemote(t, "wrong-token")
		_, err := store.Put(ctx, "data/users.csv", []byte("x"), "msg", "")
		assert.ErrorIs(t, err, domain.ErrRemoteUnauthorized)
	})

	t.Run("server unavailable", func(t *testing.T) {
		store, fake := newTestRemote(t, "test-token")
		fake.failures = 1
		_, err := store.Put(ctx, "data/users.csv", []byte("x"), "msg", "")
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	})
}
