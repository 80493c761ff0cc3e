package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAccessDenied          = errors.New("access denied")
	ErrAuthenticationMissing = errors.New("remote credentials not configured")
	ErrDuplicate             = errors.New("already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidInput          = errors.New("invalid input")
	ErrNoUsersConfigured     = errors.New("no users configured, contact the administrator")
	ErrNotAuthenticated      = errors.New("not logged in")
	ErrNotFound              = errors.New("not found")
	ErrRemoteNotFound        = errors.New("remote file not found")
	ErrRemoteUnauthorized    = errors.New("remote rejected the configured credentials")
	ErrRemoteUnavailable     = errors.New("remote temporarily unavailable")
	ErrRemoteWriteConflict   = errors.New("remote file changed since last sync, reload and retry")
	ErrSchemaMismatch        = errors.New("schema mismatch")
	ErrStorageCorrupt        = errors.New("table file is corrupt")
	ErrUnsupportedOperation  = errors.New("unsupported operation")
)

// TableError attaches the offending table name to a storage error.
type TableError struct {
	Table  string
	Detail string
	Err    error
}

func (e *TableError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("table %s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("table %s: %v: %s", e.Table, e.Err, e.Detail)
}

func (e *TableError) Unwrap() error { return e.Err }

// NewTableError builds a TableError with a formatted detail message.
func NewTableError(table string, err error, format string, args ...any) *TableError {
	return &TableError{Table: table, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// AccessDeniedError reports which role was refused which resource.
type AccessDeniedError struct {
	Role     Role
	Resource string
}

func (e *AccessDeniedError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("access denied to %s: not logged in", e.Resource)
	}
	return fmt.Sprintf("access denied to %s for role %s", e.Resource, e.Role)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }

// FileSyncError is the failure reason recorded for a single file during sync.
type FileSyncError struct {
	File string
	Err  error
}

func (e *FileSyncError) Error() string {
	return fmt.Sprintf("sync %s: %v", e.File, e.Err)
}

func (e *FileSyncError) Unwrap() error { return e.Err }

// PartialFailureError is returned by sync when at least one file failed.
type PartialFailureError struct {
	Succeeded []string
	Failed    map[string]error
}

func (e *PartialFailureError) Error() string {
	files := make([]string, 0, len(e.Failed))
	for file := range e.Failed {
		files = append(files, file)
	}
	sort.Strings(files)

	parts := make([]string, 0, len(files))
	for _, file := range files {
		parts = append(parts, fmt.Sprintf("%s: %v", file, e.Failed[file]))
	}
	return fmt.Sprintf("sync partially failed (%d succeeded, %d failed): %s",
		len(e.Succeeded), len(e.Failed), strings.Join(parts, "; "))
}
