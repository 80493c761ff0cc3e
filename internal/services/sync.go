package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
)

// SyncConfig tunes how table files are pushed to the remote.
// RemoteErr is why the remote could not be set up; sync reports it on use.
type SyncConfig struct {
	Backoff     time.Duration
	Concurrency int
	PathFor     func(fileName string) string
	Remote      string
	RemoteErr   error
	Retries     int
}

// SyncService mirrors local table files to the remote repository
type SyncService struct {
	cfg    SyncConfig
	files  ports.TableMaintainer
	ledger ports.SyncLedger
	now    func() time.Time
	remote ports.RemoteStore
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewSyncService creates a new SyncService.
// remote is nil when no repository or credential is configured.
func NewSyncService(
	files ports.TableMaintainer,
	remote ports.RemoteStore,
	ledger ports.SyncLedger,
	cfg SyncConfig,
) *SyncService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if cfg.PathFor == nil {
		cfg.PathFor = func(fileName string) string { return fileName }
	}
	return &SyncService{
		cfg:    cfg,
		files:  files,
		ledger: ledger,
		now:    time.Now,
		remote: remote,
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Configured reports whether a remote is available
func (s *SyncService) Configured() bool {
	return s.remote != nil
}

// remoteError explains why no remote is available, or returns nil
func (s *SyncService) remoteError() error {
	if s.cfg.RemoteErr != nil {
		if errors.Is(s.cfg.RemoteErr, domain.ErrAuthenticationMissing) {
			return s.cfg.RemoteErr
		}
		return fmt.Errorf("%w: %v", domain.ErrAuthenticationMissing, s.cfg.RemoteErr)
	}
	if s.remote == nil {
		return fmt.Errorf("%w: set TILP_GITHUB_REPO and TILP_GITHUB_TOKEN", domain.ErrAuthenticationMissing)
	}
	return nil
}

// SyncAll pushes every local table file to the remote.
// Files are independent: the report carries a per-file outcome and a
// *domain.PartialFailureError is returned when any of them failed.
func (s *SyncService) SyncAll(ctx context.Context, session *domain.Session) (*domain.SyncReport, error) {
	if err := session.RequireRole("sync", domain.RoleAdmin, domain.RoleStaff); err != nil {
		return nil, err
	}
	if err := s.remoteError(); err != nil {
		return nil, err
	}

	files, err := s.files.ListTableFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list table files: %w", err)
	}

	report := &domain.SyncReport{
		Results:   make([]domain.FileResult, len(files)),
		RunID:     uuid.NewString(),
		StartedAt: s.now(),
	}
	logging.Logger.Info("Sync started", "run_id", report.RunID, "files", len(files),
		"remote", s.cfg.Remote, "by", session.Username)

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			report.Results[i] = s.syncFile(ctx, file)
			return nil
		})
	}
	_ = g.Wait()
	report.FinishedAt = s.now()

	run := domain.SyncRun{
		Failed:     len(report.Failed()),
		FinishedAt: report.FinishedAt,
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		Succeeded:  len(report.Succeeded()),
		Username:   session.Username,
	}
	if err := s.ledger.RecordRun(ctx, run); err != nil {
		logging.Logger.Warn("Failed to record sync run", "run_id", run.ID, "error", err)
	}

	logging.Logger.Info("Sync finished", "run_id", report.RunID,
		"succeeded", run.Succeeded, "failed", run.Failed,
		"duration", report.FinishedAt.Sub(report.StartedAt))
	return report, report.Err()
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// syncFile pushes one table file and never returns an error: failures land in the result
func (s *SyncService) syncFile(ctx context.Context, file domain.TableFile) domain.FileResult {
	fileName := filepath.Base(file.Path)
	result := domain.FileResult{File: fileName, RemotePath: s.cfg.PathFor(fileName)}
	fail := func(err error) domain.FileResult {
		logging.Logger.Warn("File sync failed", "file", fileName, "error", err)
		result.Outcome = domain.SyncFailed
		result.Err = &domain.FileSyncError{File: fileName, Err: err}
		return result
	}

	content, err := os.ReadFile(file.Path)
	if err != nil {
		return fail(fmt.Errorf("failed to read local file: %w", err))
	}
	hash := contentHash(content)

	known, err := s.ledger.GetMarker(ctx, result.RemotePath)
	if err != nil {
		return fail(fmt.Errorf("failed to read sync ledger: %w", err))
	}
	if known != nil && known.ContentHash == hash {
		logging.Logger.Debug("File unchanged since last sync", "file", fileName)
		result.Outcome = domain.SyncUnchanged
		result.Marker = known.Marker
		return result
	}

	var base string
	if known != nil {
		base = known.Marker
	} else {
		remote, err := s.stat(ctx, result.RemotePath)
		switch {
		case errors.Is(err, domain.ErrRemoteNotFound):
		case err != nil:
			return fail(err)
		default:
			base = remote.Marker
		}
	}

	outcome, verb := domain.SyncUpdated, "Updated"
	if base == "" {
		outcome, verb = domain.SyncCreated, "Created"
	}
	message := fmt.Sprintf("AUTO-SAVE: %s %s", verb, fileName)

	marker, err := s.put(ctx, result.RemotePath, content, message, base)
	if err != nil {
		if errors.Is(err, domain.ErrRemoteWriteConflict) || errors.Is(err, domain.ErrRemoteNotFound) {
			if ferr := s.ledger.ForgetMarker(ctx, result.RemotePath); ferr != nil {
				logging.Logger.Warn("Failed to forget stale marker", "path", result.RemotePath, "error", ferr)
			}
		}
		return fail(err)
	}

	saved := domain.SyncMarker{
		ContentHash: hash,
		Marker:      marker,
		Path:        result.RemotePath,
		Size:        int64(len(content)),
		SyncedAt:    s.now(),
	}
	if err := s.ledger.SaveMarker(ctx, saved); err != nil {
		logging.Logger.Warn("Remote updated but ledger write failed", "path", result.RemotePath, "error", err)
	}

	logging.Logger.Info("File synced", "file", fileName, "outcome", outcome, "marker", marker)
	result.Outcome = outcome
	result.Marker = marker
	return result
}

// retry runs fn until it succeeds, fails permanently or attempts run out.
// Only domain.ErrRemoteUnavailable is retried; conflicts never are.
func (s *SyncService) retry(ctx context.Context, op, path string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.cfg.Retries; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrRemoteUnavailable) {
			return err
		}
		if attempt == s.cfg.Retries {
			break
		}
		logging.Logger.Debug("Remote unavailable, retrying", "op", op, "path", path, "attempt", attempt, "error", err)
		if serr := s.sleep(ctx, s.cfg.Backoff*time.Duration(attempt)); serr != nil {
			return fmt.Errorf("%w (retry cancelled: %v)", err, serr)
		}
	}
	return fmt.Errorf("%w (gave up after %d attempts)", err, s.cfg.Retries)
}

func (s *SyncService) stat(ctx context.Context, path string) (*domain.RemoteFile, error) {
	var file *domain.RemoteFile
	err := s.retry(ctx, "stat", path, func() error {
		var err error
		file, err = s.remote.Stat(ctx, path)
		return err
	})
	return file, err
}

func (s *SyncService) put(ctx context.Context, path string, content []byte, message, marker string) (string, error) {
	var newMarker string
	err := s.retry(ctx, "put", path, func() error {
		var err error
		newMarker, err = s.remote.Put(ctx, path, content, message, marker)
		return err
	})
	return newMarker, err
}

// Status returns the per-file ledger entries and the last run
func (s *SyncService) Status(ctx context.Context, session *domain.Session) (*SyncStatus, error) {
	if err := session.RequireRole("sync status", domain.RoleAdmin, domain.RoleStaff); err != nil {
		return nil, err
	}
	if s.cfg.RemoteErr != nil {
		return nil, s.remoteError()
	}

	markers, err := s.ledger.ListMarkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync markers: %w", err)
	}
	last, err := s.ledger.LastRun(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last sync run: %w", err)
	}

	return &SyncStatus{
		Configured: s.Configured(),
		LastRun:    last,
		LocalDir:   s.files.DataDir(),
		Markers:    markers,
		Remote:     s.cfg.Remote,
	}, nil
}
