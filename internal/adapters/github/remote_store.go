package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

var _ ports.RemoteStore = (*RemoteStore)(nil)

// Config identifies the repository the tables are mirrored to
type Config struct {
	BaseURL string // API root, empty for github.com
	Branch  string
	Repo    string // owner/name
	Token   string
}

// RemoteStore reads and writes table files through the GitHub contents API.
// Revision markers are blob SHAs.
type RemoteStore struct {
	branch string
	client *github.Client
	owner  string
	repo   string
}

// NewRemoteStore validates cfg and builds an authenticated client.
// Missing repository or token is domain.ErrAuthenticationMissing.
func NewRemoteStore(cfg Config) (*RemoteStore, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("%w: set TILP_GITHUB_TOKEN", domain.ErrAuthenticationMissing)
	}
	owner, repo, ok := strings.Cut(strings.TrimSpace(cfg.Repo), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("%w: TILP_GITHUB_REPO must be owner/name, got %q", domain.ErrAuthenticationMissing, cfg.Repo)
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	client := github.NewClient(nil).WithAuthToken(cfg.Token)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("failed to parse GitHub API URL: %w", err)
		}
		client.BaseURL = u
	}

	logging.Logger.Debug("GitHub remote configured", "owner", owner, "repo", repo, "branch", branch)
	return &RemoteStore{branch: branch, client: client, owner: owner, repo: repo}, nil
}

// Stat returns the current blob SHA and size of path
func (s *RemoteStore) Stat(ctx context.Context, path string) (*domain.RemoteFile, error) {
	file, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path, &github.RepositoryContentGetOptions{
		Ref: s.branch,
	})
	if err != nil {
		return nil, classify(path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: remote path %s is a directory", domain.ErrInvalidInput, path)
	}

	return &domain.RemoteFile{
		Marker: file.GetSHA(),
		Path:   path,
		Size:   int64(file.GetSize()),
	}, nil
}

// Put creates path when marker is empty and updates it otherwise.
// GitHub refuses a create without sha when the file exists (422) and an update whose
// sha is not the current blob (409); both come back as domain.ErrRemoteWriteConflict.
func (s *RemoteStore) Put(ctx context.Context, path string, content []byte, message, marker string) (string, error) {
	opts := &github.RepositoryContentFileOptions{
		Branch:  github.String(s.branch),
		Content: content,
		Message: github.String(message),
	}

	var (
		res *github.RepositoryContentResponse
		err error
	)
	if marker == "" {
		res, _, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, path, opts)
	} else {
		opts.SHA = github.String(marker)
		res, _, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, path, opts)
	}
	if err != nil {
		return "", classify(path, err)
	}
	if res == nil || res.Content == nil || res.Content.GetSHA() == "" {
		return "", fmt.Errorf("%w: GitHub returned no blob sha for %s", domain.ErrRemoteUnavailable, path)
	}

	logging.Logger.Info("Remote file written", "path", path, "created", marker == "", "sha", res.Content.GetSHA())
	return res.Content.GetSHA(), nil
}

// classify maps GitHub failures onto domain errors
func classify(path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: rate limited writing %s: %v", domain.ErrRemoteUnavailable, path, err)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		status := ghErr.Response.StatusCode
		switch {
		case status == http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrRemoteNotFound, path)
		case status == http.StatusConflict || status == http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %s: %s", domain.ErrRemoteWriteConflict, path, ghErr.Message)
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return fmt.Errorf("%w: %s: %s", domain.ErrRemoteUnauthorized, path, ghErr.Message)
		case status == http.StatusTooManyRequests || status >= 500:
			return fmt.Errorf("%w: %s: HTTP %d", domain.ErrRemoteUnavailable, path, status)
		}
		return fmt.Errorf("GitHub request for %s failed: %w", path, err)
	}

	// transport level failure
	return fmt.Errorf("%w: %s: %v", domain.ErrRemoteUnavailable, path, err)
}
