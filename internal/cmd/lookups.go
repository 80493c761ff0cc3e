package cmd

import (
	"context"
	"fmt"
	"strings"
)

// LookupsCmd manages lookup lists
type LookupsCmd struct {
	Add  LookupsAddCmd  `cmd:"add" help:"Add a name"`
	List LookupsListCmd `cmd:"list" help:"List names" default:"withargs"`
	Rm   LookupsRmCmd   `cmd:"rm" help:"Remove a name"`
}

// LookupsAddCmd adds a name
type LookupsAddCmd struct {
	Table string `arg:"" help:"Lookup table" enum:"disciplines,goal_areas"`
	Name  string `arg:"" help:"Name to add"`
}

// Run executes the add command
func (l *LookupsAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}
	if err := cli.Container.LookupService.AddName(ctx, session, l.Table, l.Name); err != nil {
		return err
	}
	success("%s now lists %q.", l.Table, strings.TrimSpace(l.Name))
	return nil
}

// LookupsRmCmd removes a name
type LookupsRmCmd struct {
	Table string `arg:"" help:"Lookup table" enum:"disciplines,goal_areas"`
	Name  string `arg:"" help:"Name to remove"`
}

// Run executes the rm command
func (l *LookupsRmCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}
	if err := cli.Container.LookupService.RemoveName(ctx, session, l.Table, l.Name); err != nil {
		return err
	}
	success("Removed %q from %s.", l.Name, l.Table)
	return nil
}

// LookupsListCmd lists names
type LookupsListCmd struct {
	Table string `arg:"" help:"Lookup table" enum:"disciplines,goal_areas"`
}

// Run executes the list command
func (l *LookupsListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	names, err := cli.Container.LookupService.ListNames(ctx, session, l.Table)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
