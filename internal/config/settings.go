package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Defaults applied when neither flags, env nor settings.json say otherwise
const (
	DefaultBranch          = "main"
	DefaultRemotePrefix    = "data"
	DefaultSessionTTL      = 12 * time.Hour
	DefaultSyncConcurrency = 4
	DefaultSyncRetries     = 3
)

// Settings represents the structure of ~/.tilp/settings.json
type Settings struct {
	DataDir         string `json:"data_dir,omitempty"`
	Debug           *bool  `json:"debug,omitempty"`
	GitHubBranch    string `json:"github_branch,omitempty"`
	GitHubRepo      string `json:"github_repo,omitempty"`
	LockTables      *bool  `json:"lock_tables,omitempty"`
	MaxLogFiles     *int   `json:"max_log_files,omitempty"`
	RemotePrefix    string `json:"remote_prefix,omitempty"`
	SessionTTLHours *int   `json:"session_ttl_hours,omitempty"`
	SyncConcurrency *int   `json:"sync_concurrency,omitempty"`
	SyncRetries     *int   `json:"sync_retries,omitempty"`
}

// LoadSettings loads settings from $TILP_HOME/settings.json (or ~/.tilp/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DataDir != "" {
		settings.DataDir = ExpandPath(settings.DataDir)
	}
	settings.RemotePrefix = strings.Trim(settings.RemotePrefix, "/")

	return &settings, nil
}

// SaveSettings saves settings to $TILP_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// ResolvedDataDir returns the table directory, honouring data_dir
func (s *Settings) ResolvedDataDir() string {
	if s != nil && s.DataDir != "" {
		return s.DataDir
	}
	return GetDataDir()
}

// ResolvedLockTables reports whether OS file locks guard table writes
func (s *Settings) ResolvedLockTables() bool {
	return s != nil && s.LockTables != nil && *s.LockTables
}

// ResolvedSessionTTL returns how long a login stays valid
func (s *Settings) ResolvedSessionTTL() time.Duration {
	if s != nil && s.SessionTTLHours != nil && *s.SessionTTLHours > 0 {
		return time.Duration(*s.SessionTTLHours) * time.Hour
	}
	return DefaultSessionTTL
}

// ResolvedSyncConcurrency returns the number of files synced in parallel
func (s *Settings) ResolvedSyncConcurrency() int {
	if s != nil && s.SyncConcurrency != nil && *s.SyncConcurrency > 0 {
		return *s.SyncConcurrency
	}
	return DefaultSyncConcurrency
}

// ResolvedSyncRetries returns how many attempts a transient remote failure gets
func (s *Settings) ResolvedSyncRetries() int {
	if s != nil && s.SyncRetries != nil && *s.SyncRetries > 0 {
		return *s.SyncRetries
	}
	return DefaultSyncRetries
}
