package cmd

import (
	"context"
	"fmt"

	"github.com/tilpconnect/tilp/internal/logging"
	"github.com/tilpconnect/tilp/internal/services"
	"github.com/tilpconnect/tilp/internal/theme"
)

// UsersCmd manages user accounts
type UsersCmd struct {
	Add    UsersAddCmd    `cmd:"add" help:"Create a user account"`
	Del    UsersDelCmd    `cmd:"del" help:"Delete a user account"`
	List   UsersListCmd   `cmd:"list" help:"List user accounts" default:"1"`
	Update UsersUpdateCmd `cmd:"update" help:"Change role, child link or password"`
}

// UsersAddCmd creates a user account
type UsersAddCmd struct {
	ChildLink string `help:"Child a parent account may see" short:"c"`
	Role      string `help:"Role" enum:"admin,staff,parent" default:"staff" short:"r"`
	Username  string `arg:"" help:"Username"`
}

// Run executes the add command
func (u *UsersAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	password, err := readPassword(fmt.Sprintf("Password for %s", u.Username))
	if err != nil {
		return err
	}

	user, err := cli.Container.RosterService.CreateUser(ctx, session, services.CreateUserParams{
		ChildLink: u.ChildLink,
		Password:  password,
		Role:      u.Role,
		Username:  u.Username,
	})
	if err != nil {
		return err
	}
	success("Created %s account %q linked to %s.", user.Role, user.Username, user.ChildLink)
	return nil
}

// UsersUpdateCmd changes a user account
type UsersUpdateCmd struct {
	ChildLink string `help:"New child link" short:"c"`
	Password  bool   `help:"Prompt for a new password" short:"p"`
	Role      string `help:"New role (admin, staff or parent)" short:"r"`
	Username  string `arg:"" help:"Username"`
}

// Run executes the update command
func (u *UsersUpdateCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	params := services.UpdateUserParams{ChildLink: u.ChildLink, Role: u.Role}
	if u.Password {
		if params.Password, err = readPassword(fmt.Sprintf("New password for %s", u.Username)); err != nil {
			return err
		}
	}

	user, err := cli.Container.RosterService.UpdateUser(ctx, session, u.Username, params)
	if err != nil {
		return err
	}
	success("Updated %q: role %s, child %s.", user.Username, user.Role, user.ChildLink)
	return nil
}

// UsersDelCmd deletes a user account
type UsersDelCmd struct {
	Force    bool   `help:"Delete without confirmation" short:"f"`
	Username string `arg:"" help:"Username"`
}

// Run executes the del command
func (u *UsersDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	if !u.Force {
		ok, err := confirm(fmt.Sprintf("Delete user %q?", u.Username), "They will no longer be able to log in.")
		if err != nil || !ok {
			logging.Logger.Debug("User deletion not confirmed", "username", u.Username)
			return err
		}
	}

	if err := cli.Container.RosterService.DeleteUser(ctx, session, u.Username); err != nil {
		return err
	}
	success("Deleted user %q.", u.Username)
	return nil
}

// UsersListCmd lists user accounts
type UsersListCmd struct{}

// Run executes the list command
func (u *UsersListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	users, err := cli.Container.RosterService.ListUsers(ctx, session)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, []string{user.Username, theme.RoleStyle(user.Role).Render(string(user.Role)), user.ChildLink})
	}
	fmt.Println(renderTable([]string{"username", "role", "child link"}, rows))
	return nil
}
