package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/tilpconnect/tilp/internal/config"
	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Children  ChildrenCmd  `cmd:"children" help:"Manage child profiles (add, del, list)"`
	Dashboard DashboardCmd `cmd:"dashboard" help:"Show the progress dashboard of a child"`
	Filter    FilterCmd    `cmd:"filter" help:"Select the child shown by progress and dashboard commands"`
	Init      InitCmd      `cmd:"init" help:"Create the admin account and default lookups"`
	Login     LoginCmd     `cmd:"login" help:"Log in and remember the session"`
	Logout    LogoutCmd    `cmd:"logout" help:"Forget the current session"`
	Lookups   LookupsCmd   `cmd:"lookups" help:"Manage disciplines and goal areas (add, rm, list)"`
	Migrate   MigrateCmd   `cmd:"migrate" help:"Add missing columns to table files written by older versions"`
	Plans     PlansCmd     `cmd:"plans" help:"Record and list session plans"`
	Progress  ProgressCmd  `cmd:"progress" help:"Record and list progress notes"`
	Roster    RosterCmd    `cmd:"roster" help:"Import users, children and lookups from a YAML file"`
	Settings  SettingsCmd  `cmd:"settings" help:"Manage settings (meta)"`
	Sync      SyncCmd      `cmd:"sync" help:"Push table files to the remote repository"`
	Tables    TablesCmd    `cmd:"tables" help:"Read and edit tables directly (show, add, update, delete)"`
	Users     UsersCmd     `cmd:"users" help:"Manage user accounts (add, update, del, list)"`
	VersionC  VersionCmd   `cmd:"version" name:"version" help:"Show version information"`
	Whoami    WhoamiCmd    `cmd:"whoami" help:"Show the logged in user"`

	// Internal fields (not flags)
	Container   *Container       `kong:"-"`
	settings    *config.Settings `kong:"-"`
	versionInfo string           `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// SetVersionInfo sets the text printed by the version command
func (c *CLI) SetVersionInfo(info string) {
	c.versionInfo = info
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings == nil {
		c.settings = &config.Settings{}
	}

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if env, hasEnv := os.LookupEnv("TILP_MAX_LOG_FILES"); hasEnv {
			if n, err := strconv.Atoi(env); err == nil {
				c.MaxLogFiles = n
			}
		} else if c.settings.MaxLogFiles != nil {
			c.MaxLogFiles = *c.settings.MaxLogFiles
		}
	}

	if !c.Debug {
		if env, hasEnv := os.LookupEnv("TILP_DEBUG"); hasEnv {
			c.Debug = env == "1" || env == "true"
		} else if c.settings.Debug != nil && *c.settings.Debug {
			c.Debug = true
		}
	}

	if err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	// Create container AFTER logging is initialized so GORM logs through it
	container, err := NewContainer(c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// session restores the logged in session or explains how to get one
func (c *CLI) session(ctx context.Context) (*domain.Session, error) {
	session, err := c.Container.AuthService.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return nil, fmt.Errorf("%w (run `tilp login`)", err)
		}
		return nil, err
	}
	return session, nil
}

// VersionCmd prints build information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(cli *CLI) error {
	fmt.Println(cli.versionInfo)
	return nil
}
