package cmd

import (
	"context"
	"fmt"

	"github.com/tilpconnect/tilp/internal/domain"
)

// TablesCmd gives direct access to tables
type TablesCmd struct {
	Add    TablesAddCmd    `cmd:"add" help:"Append a row"`
	Delete TablesDeleteCmd `cmd:"delete" aliases:"del" help:"Delete a row by id"`
	Show   TablesShowCmd   `cmd:"show" help:"Print a table" default:"withargs"`
	Update TablesUpdateCmd `cmd:"update" help:"Change columns of a row by id"`
}

// TablesShowCmd prints a table
type TablesShowCmd struct {
	Name string `arg:"" help:"Table name" enum:"users,children,disciplines,goal_areas,progress,session_plans"`
}

// Run executes the show command
func (t *TablesShowCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	table, err := cli.Container.RecordService.GetTable(ctx, session, t.Name)
	if err != nil {
		return err
	}
	printWarnings(table)
	printRecords(table)
	return nil
}

// TablesAddCmd appends a row
type TablesAddCmd struct {
	Name string            `arg:"" help:"Table name (children, users and lookups have their own commands)" enum:"progress,session_plans"`
	Set  map[string]string `help:"Column values as column=value" short:"s" required:""`
}

// Run executes the add command
func (t *TablesAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	rec, err := cli.Container.RecordService.AppendRecord(ctx, session, t.Name, domain.Record(t.Set))
	if err != nil {
		return err
	}
	if id := rec[domain.IDColumn]; id != "" {
		success("Added row %s to %s.", id, t.Name)
	} else {
		success("Added row to %s.", t.Name)
	}
	return nil
}

// TablesUpdateCmd patches a row
type TablesUpdateCmd struct {
	Name string            `arg:"" help:"Table name" enum:"progress,session_plans"`
	ID   int64             `arg:"" help:"Row id"`
	Set  map[string]string `help:"Column values as column=value" short:"s" required:""`
}

// Run executes the update command
func (t *TablesUpdateCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	found, err := cli.Container.RecordService.UpdateRecord(ctx, session, t.Name, t.ID, domain.Record(t.Set))
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s row %d: %w", t.Name, t.ID, domain.ErrNotFound)
	}
	success("Updated %s row %d.", t.Name, t.ID)
	return nil
}

// TablesDeleteCmd deletes a row
type TablesDeleteCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	Name  string `arg:"" help:"Table name" enum:"progress,session_plans"`
	ID    int64  `arg:"" help:"Row id"`
}

// Run executes the delete command
func (t *TablesDeleteCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	if !t.Force {
		ok, err := confirm(fmt.Sprintf("Delete %s row %d?", t.Name, t.ID), "This cannot be undone locally.")
		if err != nil || !ok {
			return err
		}
	}

	found, err := cli.Container.RecordService.DeleteRecord(ctx, session, t.Name, t.ID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s row %d: %w", t.Name, t.ID, domain.ErrNotFound)
	}
	success("Deleted %s row %d.", t.Name, t.ID)
	return nil
}
