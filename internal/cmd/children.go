package cmd

import (
	"context"
	"fmt"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/theme"
)

// ChildrenCmd manages child profiles
type ChildrenCmd struct {
	Add  ChildrenAddCmd  `cmd:"add" help:"Add a child profile"`
	Del  ChildrenDelCmd  `cmd:"del" help:"Delete a child profile by id"`
	List ChildrenListCmd `cmd:"list" help:"List child profiles" default:"1"`
}

// ChildrenAddCmd adds a child profile
type ChildrenAddCmd struct {
	Born   string `help:"Date of birth (YYYY-MM-DD)"`
	Name   string `arg:"" help:"Child's full name"`
	Parent string `help:"Username of the parent account" short:"p"`
}

// Run executes the add command
func (c *ChildrenAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	child := domain.Child{Name: c.Name, ParentUsername: c.Parent}
	if c.Born != "" {
		if child.DateOfBirth, err = parseDateFlag("born", c.Born); err != nil {
			return err
		}
	}

	added, err := cli.Container.RosterService.AddChild(ctx, session, child)
	if err != nil {
		return err
	}
	success("Added child %s with id %d.", added.Name, added.ID)
	return nil
}

// ChildrenDelCmd deletes a child profile
type ChildrenDelCmd struct {
	Force bool  `help:"Delete without confirmation" short:"f"`
	ID    int64 `arg:"" help:"Child id"`
}

// Run executes the del command
func (c *ChildrenDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	if !c.Force {
		ok, err := confirm(fmt.Sprintf("Delete child %d?", c.ID),
			"Linked parent accounts are reset to All. Progress notes are kept.")
		if err != nil || !ok {
			return err
		}
	}

	if err := cli.Container.RosterService.DeleteChild(ctx, session, c.ID); err != nil {
		return err
	}
	success("Deleted child %d.", c.ID)
	return nil
}

// ChildrenListCmd lists child profiles
type ChildrenListCmd struct{}

// Run executes the list command
func (c *ChildrenListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	children, err := cli.Container.RosterService.ListChildren(ctx, session)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		fmt.Println(theme.MutedStyle.Render("No children registered yet."))
		return nil
	}

	rows := make([][]string, 0, len(children))
	for _, child := range children {
		rows = append(rows, []string{domain.FormatID(child.ID), child.Name, child.ParentUsername, child.DateOfBirth.String()})
	}
	fmt.Println(renderTable([]string{"id", "name", "parent", "date of birth"}, rows))
	return nil
}
