package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads .env from the working directory and from $TILP_HOME.
// Variables already set in the environment win; missing files are ignored.
func LoadDotEnv() error {
	for _, path := range []string{".env", filepath.Join(GetTilpHome(), ".env")} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// firstEnv returns the first non-empty variable among keys
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// RemoteConfig is the resolved location and credential of the remote mirror
type RemoteConfig struct {
	Branch string
	Prefix string
	Repo   string
	Token  string
}

// Configured reports whether both repository and token are known
func (r RemoteConfig) Configured() bool {
	return r.Repo != "" && r.Token != ""
}

// PathFor maps a local table file name to its remote path
func (r RemoteConfig) PathFor(fileName string) string {
	if r.Prefix == "" {
		return fileName
	}
	return r.Prefix + "/" + fileName
}

// ResolveRemote applies env > settings.json > defaults.
// The token is only ever read from the environment.
func ResolveRemote(settings *Settings) RemoteConfig {
	if settings == nil {
		settings = &Settings{}
	}

	cfg := RemoteConfig{
		Branch: firstEnv("TILP_GITHUB_BRANCH"),
		Prefix: DefaultRemotePrefix,
		Repo:   firstEnv("TILP_GITHUB_REPO", "STREAMLIT_GITHUB_REPO"),
		Token:  firstEnv("TILP_GITHUB_TOKEN", "GITHUB_TOKEN"),
	}
	if cfg.Repo == "" {
		cfg.Repo = settings.GitHubRepo
	}
	if cfg.Branch == "" {
		cfg.Branch = settings.GitHubBranch
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if settings.RemotePrefix != "" {
		cfg.Prefix = settings.RemotePrefix
	}
	return cfg
}

// SessionSecret returns TILP_SESSION_SECRET, empty when unset
func SessionSecret() string {
	return os.Getenv("TILP_SESSION_SECRET")
}
