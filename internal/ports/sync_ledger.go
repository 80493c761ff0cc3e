package ports

import (
	"context"

	"github.com/tilpconnect/tilp/internal/domain"
)

// SyncMarkerStore remembers the last synced revision of each remote path
type SyncMarkerStore interface {
	// GetMarker returns (nil, nil) when the path was never synced
	GetMarker(ctx context.Context, path string) (*domain.SyncMarker, error)
	ForgetMarker(ctx context.Context, path string) error
	ListMarkers(ctx context.Context) ([]domain.SyncMarker, error)
	SaveMarker(ctx context.Context, marker domain.SyncMarker) error
}

// SyncRunRecorder keeps a history of sync runs
type SyncRunRecorder interface {
	// LastRun returns (nil, nil) when nothing was recorded yet
	LastRun(ctx context.Context) (*domain.SyncRun, error)
	RecordRun(ctx context.Context, run domain.SyncRun) error
}

// SyncLedger is the composite interface
type SyncLedger interface {
	SyncMarkerStore
	SyncRunRecorder
	Close() error
}
