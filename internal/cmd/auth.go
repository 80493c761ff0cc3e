package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/services"
	"github.com/tilpconnect/tilp/internal/theme"
)

// InitCmd seeds an empty data directory
type InitCmd struct{}

// Run executes the init command
func (i *InitCmd) Run(cli *CLI) error {
	ctx := context.Background()
	logging.Logger.Info("Executing init command")

	needsAdmin, err := cli.Container.BootstrapService.NeedsAdmin(ctx)
	if err != nil {
		return err
	}
	var password string
	if needsAdmin {
		password, err = readPassword(fmt.Sprintf("Password for %s", services.DefaultAdminUsername))
		if err != nil {
			return err
		}
	}

	result, err := cli.Container.BootstrapService.Init(ctx, password)
	if err != nil {
		return err
	}

	if result.AdminCreated {
		success("Created admin account %q.", services.DefaultAdminUsername)
	}
	if len(result.Migrated) > 0 {
		success("Migrated tables: %v", result.Migrated)
	}
	success("Added %d lookup names.", result.LookupsAdded)
	return nil
}

// LoginCmd authenticates and remembers the session
type LoginCmd struct {
	Username string `arg:"" help:"Username" env:"TILP_USERNAME"`
}

// Run executes the login command
func (l *LoginCmd) Run(cli *CLI) error {
	password, err := readPassword(fmt.Sprintf("Password for %s", l.Username))
	if err != nil {
		return err
	}

	session, err := cli.Container.AuthService.Login(context.Background(), l.Username, password)
	if err != nil {
		return err
	}

	success("Logged in as %s (%s).", session.Username, session.Role)
	return nil
}

// LogoutCmd forgets the current session
type LogoutCmd struct{}

// Run executes the logout command
func (l *LogoutCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.Container.AuthService.Current(ctx)
	if err != nil {
		session = nil
	}
	if err := cli.Container.AuthService.Logout(ctx, session); err != nil {
		return err
	}
	success("Logged out.")
	return nil
}

// WhoamiCmd shows the current session
type WhoamiCmd struct{}

// Run executes the whoami command
func (w *WhoamiCmd) Run(cli *CLI) error {
	session, err := cli.session(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", theme.LabelStyle.Render("User:     "), session.Username)
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Role:     "), theme.RoleStyle(session.Role).Render(string(session.Role)))
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Child:    "), session.ChildLink)
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Filter:   "), session.ChildFilter())
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Expires:  "), humanize.Time(session.ExpiresAt))

	var pages []string
	for _, page := range domain.AllPages {
		if session.CanViewPage(page) {
			pages = append(pages, string(page))
		}
	}
	fmt.Printf("%s %v\n", theme.LabelStyle.Render("Pages:    "), pages)
	return nil
}

// FilterCmd shows or changes the selected child
type FilterCmd struct {
	Child string `arg:"" optional:"" help:"Child name, or All"`
}

// Run executes the filter command
func (f *FilterCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	if f.Child == "" {
		fmt.Println(session.ChildFilter())
		return nil
	}
	if err := cli.Container.AuthService.SelectChild(ctx, session, f.Child); err != nil {
		return err
	}
	success("Showing %s.", session.ChildFilter())
	return nil
}
