package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/tilpconnect/tilp/internal/adapters/csvstore"
	adaptergithub "github.com/tilpconnect/tilp/internal/adapters/github"
	"github.com/tilpconnect/tilp/internal/adapters/sessionfile"
	adapterstorage "github.com/tilpconnect/tilp/internal/adapters/storage"
	"github.com/tilpconnect/tilp/internal/config"
	"github.com/tilpconnect/tilp/internal/crypto"
	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/ports"
	"github.com/tilpconnect/tilp/internal/services"
)

// syncBackoff is the base delay between retries of a transient remote failure
const syncBackoff = time.Second

// Container holds all dependencies for the application
type Container struct {
	// Services
	AuthService      *services.AuthService
	BootstrapService *services.BootstrapService
	DashboardService *services.DashboardService
	LookupService    *services.LookupService
	RecordService    *services.RecordService
	RosterService    *services.RosterService
	SyncService      *services.SyncService

	// Internal - for cleanup only
	ledger ports.SyncLedger
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	// Create adapters
	store, err := csvstore.NewStore(settings.ResolvedDataDir(), settings.ResolvedLockTables())
	if err != nil {
		return nil, err
	}
	registry := csvstore.NewRegistry(store)
	hasher := crypto.NewPasswordHasher(0)

	secret, err := sessionfile.LoadOrCreateSecret(config.GetSessionKeyPath(), config.SessionSecret())
	if err != nil {
		return nil, err
	}
	sessions := sessionfile.NewStore(config.GetSessionTokenPath(), secret)

	ledger, err := adapterstorage.NewSQLiteLedger(config.GetLedgerPath())
	if err != nil {
		return nil, err
	}

	// A bad remote configuration only disables sync; local commands keep working
	remoteCfg := config.ResolveRemote(settings)
	remote, remoteErr := newRemoteStore(remoteCfg)
	if remoteErr != nil {
		logging.Logger.Warn("Remote sync disabled", "repo", remoteCfg.Repo, "error", remoteErr)
		remote = nil
	}

	// Create services
	recordService := services.NewRecordService(store, registry)
	rosterService := services.NewRosterService(store, recordService, hasher)
	syncService := services.NewSyncService(store, remote, ledger, services.SyncConfig{
		Backoff:     syncBackoff,
		Concurrency: settings.ResolvedSyncConcurrency(),
		PathFor:     remoteCfg.PathFor,
		Remote:      fmt.Sprintf("%s@%s", remoteCfg.Repo, remoteCfg.Branch),
		RemoteErr:   remoteErr,
		Retries:     settings.ResolvedSyncRetries(),
	})

	return &Container{
		AuthService:      services.NewAuthService(store, hasher, sessions, settings.ResolvedSessionTTL()),
		BootstrapService: services.NewBootstrapService(store, registry, rosterService, hasher),
		DashboardService: services.NewDashboardService(recordService),
		LookupService:    services.NewLookupService(registry),
		RecordService:    recordService,
		RosterService:    rosterService,
		SyncService:      syncService,
		ledger:           ledger,
	}, nil
}

// newRemoteStore returns nil when the remote is not configured; sync reports that on use
func newRemoteStore(cfg config.RemoteConfig) (ports.RemoteStore, error) {
	if !cfg.Configured() {
		logging.Logger.Info("Remote sync not configured", "repo_set", cfg.Repo != "", "token_set", cfg.Token != "")
		return nil, nil
	}

	remote, err := adaptergithub.NewRemoteStore(adaptergithub.Config{
		Branch: cfg.Branch,
		Repo:   cfg.Repo,
		Token:  cfg.Token,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationMissing) {
			return nil, fmt.Errorf("invalid remote configuration: %w", err)
		}
		return nil, err
	}
	return remote, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.ledger != nil {
		return c.ledger.Close()
	}
	return nil
}
