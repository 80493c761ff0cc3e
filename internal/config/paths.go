package config

import (
	"os"
	"path/filepath"
)

// GetTilpHome returns TILP_HOME or ~/.tilp default
func GetTilpHome() string {
	tilpHome := os.Getenv("TILP_HOME")
	if tilpHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".tilp"
		}
		return filepath.Join(homeDir, ".tilp")
	}
	return ExpandPath(tilpHome)
}

// GetDataDir returns $TILP_HOME/data, where the table files live
func GetDataDir() string {
	return filepath.Join(GetTilpHome(), "data")
}

// GetLedgerPath returns $TILP_HOME/sync.db
func GetLedgerPath() string {
	return filepath.Join(GetTilpHome(), "sync.db")
}

// GetSessionTokenPath returns $TILP_HOME/session.jwt
func GetSessionTokenPath() string {
	return filepath.Join(GetTilpHome(), "session.jwt")
}

// GetSessionKeyPath returns $TILP_HOME/session.key
func GetSessionKeyPath() string {
	return filepath.Join(GetTilpHome(), "session.key")
}

// GetSettingsPath returns $TILP_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetTilpHome(), "settings.json")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
