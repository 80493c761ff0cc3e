package domain

import "time"

// SyncOutcome is the result of syncing one file
type SyncOutcome string

const (
	SyncCreated   SyncOutcome = "created"
	SyncFailed    SyncOutcome = "failed"
	SyncUnchanged SyncOutcome = "unchanged"
	SyncUpdated   SyncOutcome = "updated"
)

// RemoteFile is the remote copy of a table file
type RemoteFile struct {
	Marker string
	Path   string
	Size   int64
}

// SyncMarker is what the ledger remembers about a file after a successful sync
type SyncMarker struct {
	ContentHash string
	Marker      string
	Path        string
	Size        int64
	SyncedAt    time.Time
}

// FileResult is the per-file entry of a SyncReport
type FileResult struct {
	Err        error
	File       string
	Marker     string
	Outcome    SyncOutcome
	RemotePath string
}

// SyncReport aggregates per-file results of one sync run
type SyncReport struct {
	FinishedAt time.Time
	Results    []FileResult
	RunID      string
	StartedAt  time.Time
}

// Succeeded returns the files that were created, updated or already current
func (r *SyncReport) Succeeded() []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome != SyncFailed {
			out = append(out, res.File)
		}
	}
	return out
}

// Failed returns failure reasons keyed by file
func (r *SyncReport) Failed() map[string]error {
	out := make(map[string]error)
	for _, res := range r.Results {
		if res.Outcome == SyncFailed {
			out[res.File] = res.Err
		}
	}
	return out
}

// Result returns the entry for file
func (r *SyncReport) Result(file string) (FileResult, bool) {
	for _, res := range r.Results {
		if res.File == file {
			return res, true
		}
	}
	return FileResult{}, false
}

// Err returns a PartialFailureError when any file failed
func (r *SyncReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return &PartialFailureError{Succeeded: r.Succeeded(), Failed: failed}
}

// SyncRun is a summary of a past sync stored in the ledger
type SyncRun struct {
	Failed     int
	FinishedAt time.Time
	ID         string
	StartedAt  time.Time
	Succeeded  int
	Username   string
}
