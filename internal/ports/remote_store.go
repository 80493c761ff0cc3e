package ports

import (
	"context"

	"github.com/tilpconnect/tilp/internal/domain"
)

// RemoteStore is a versioned remote copy of the table files
type RemoteStore interface {
	// Stat returns the remote file and its revision marker, or domain.ErrRemoteNotFound
	Stat(ctx context.Context, path string) (*domain.RemoteFile, error)

	// Put writes content at path and returns the new revision marker.
	// An empty marker creates the file and fails if it already exists;
	// a non-empty marker updates the file only if the marker is current.
	// Both failures are reported as domain.ErrRemoteWriteConflict.
	Put(ctx context.Context, path string, content []byte, message, marker string) (string, error)
}
