package main

import (
	"context"

	"github.com/trezcool/edulearn/core"
	"github.com/trezcool/edulearn/core/user"
)

func (cli *commandLine) printAdminUsage() {
	cli.printf("Usage:\n")
	cli.printf("  admin users [-page N -limit N -role ROLE -search Q] - list users\n")
	cli.printf("  admin stats - show user counters\n")
	cli.printf("  admin deactivate -id ID - deactivate a user\n")
}

func (cli *commandLine) admin(args []string) error {
	if len(args) == 0 {
		cli.printAdminUsage()
		return errHelp
	}

	usersCmd := cli.flagSet("users")
	usersPage := usersCmd.Int("page", 1, "Page number")
	usersLimit := usersCmd.Int("limit", 10, "Users per page")
	usersRole := usersCmd.String("role", "", "Filter by role")
	usersSearch := usersCmd.String("search", "", "Search by name or email")

	deactivateCmd := cli.flagSet("deactivate")
	deactivateID := deactivateCmd.String("id", "", "The user ID")

	switch args[0] {
	case "users":
		if err := parse(usersCmd, args[1:]); err != nil {
			return err
		}
		return cli.listUsers(user.QueryFilter{Page: *usersPage, Limit: *usersLimit, Role: *usersRole, Search: *usersSearch})
	case "stats":
		return cli.stats()
	case "deactivate":
		if err := parse(deactivateCmd, args[1:]); err != nil {
			return err
		}
		if *deactivateID == "" {
			deactivateCmd.Usage()
			return errHelp
		}
		return cli.deactivate(*deactivateID)
	default:
		cli.printAdminUsage()
		return errHelp
	}
}

func (cli *commandLine) listUsers(qf user.QueryFilter) error {
	page, err := cli.api.Admin.ListUsers(context.Background(), qf)
	if err != nil {
		return err
	}
	for _, usr := range page.Users {
		status := "active"
		if !usr.Active() {
			status = "inactive"
		}
		cli.printf("%s  %s  %s  last login %s\n", usr.ID, usr, status, usr.LastLogin.Format("2006-01-02 15:04", "never"))
	}
	p := page.Pagination
	cli.printf("page %d/%d, %d user(s)\n", p.Page, p.Pages, p.Total)
	return nil
}

func (cli *commandLine) stats() error {
	s, err := cli.api.Admin.Stats(context.Background())
	if err != nil {
		return err
	}
	cli.printf("users: %d (%d active)\nstudents: %d\nteachers: %d\nadmins: %d\n",
		s.TotalUsers, s.ActiveUsers, s.Students, s.Teachers, s.Admins)
	return nil
}

func (cli *commandLine) deactivate(id string) error {
	res, err := cli.api.Admin.DeleteUser(context.Background(), id)
	if err != nil {
		return err
	}
	cli.printf("%s\n", core.DefaultString(res.Message, "User deactivated"))
	return nil
}
