package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/tilpconnect/tilp/internal/config"
	"github.com/tilpconnect/tilp/internal/theme"
)

// RosterCmd imports a roster file
type RosterCmd struct {
	Import RosterImportCmd `cmd:"import" help:"Import users, children and lookups from a YAML file" default:"withargs"`
}

// RosterImportCmd reads a YAML roster and adds what is missing
type RosterImportCmd struct {
	File string `arg:"" help:"Path to the roster YAML file" type:"path"`
}

// Run executes the import command
func (r *RosterImportCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(config.ExpandPath(r.File))
	if err != nil {
		return fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	result, err := cli.Container.BootstrapService.ImportRoster(ctx, session, f)
	if err != nil {
		return err
	}

	success("Imported %d users, %d children and %d lookup names.",
		result.UsersAdded, result.ChildrenAdded, result.LookupsAdded)
	for _, skipped := range result.Skipped {
		fmt.Println(theme.MutedStyle.Render("skipped existing " + skipped))
	}
	return nil
}
