package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/tilpconnect/tilp/internal/theme"
)

// MigrateCmd rewrites table files to the current schema
type MigrateCmd struct{}

// Run executes the migrate command
func (m *MigrateCmd) Run(cli *CLI) error {
	migrated, err := cli.Container.BootstrapService.Migrate(context.Background())
	if err != nil {
		return err
	}
	if len(migrated) == 0 {
		fmt.Println(theme.MutedStyle.Render("All table files are up to date."))
		return nil
	}
	success("Migrated %s.", strings.Join(migrated, ", "))
	return nil
}
