package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/user"
)

func (cli *commandLine) addUserCmd() *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user, or update the one with this email. The password is prompted next.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				_ = cmd.Usage()
				return errHelp
			}
			pwd, err := cli.promptPassword(cmd)
			if err != nil {
				return err
			}
			if pwd == "" {
				_ = cmd.Usage()
				return errHelp
			}
			usr, err := cli.addUser(cmd.Context(), name, email, role, pwd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s (%s) saved\n", usr.Email, usr.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "The user's name. Defaults to the email's local part.")
	cmd.Flags().StringVar(&email, "email", "", "The user's email.")
	cmd.Flags().StringVar(&role, "role", user.RoleAdmin, "One of admin, editor, viewer.")
	return cmd
}

// addUser updates or creates an active user.User
func (cli *commandLine) addUser(ctx context.Context, name, email, role, pwd string) (user.User, error) {
	svc, err := cli.userService(ctx)
	if err != nil {
		return user.User{}, err
	}

	email = core.CleanString(email, true /* lower */)
	role = core.CleanString(role, true /* lower */)
	if user.RolePriority(role) == 0 {
		return user.User{}, fmt.Errorf("unknown role %q", role)
	}

	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if !core.IsNotFound(err) {
			return user.User{}, err
		}
		if name == "" {
			name = email
		}
		return svc.Create(ctx, user.NewUser{Name: name, Email: email, Role: role, Status: user.StatusActive, Password: pwd})
	}

	uu := user.NewUpdateUser(usr)
	if name != "" {
		uu.Name = core.CleanString(name)
	}
	uu.Role = role
	uu.Status = user.StatusActive
	uu.Password = pwd
	return svc.Update(ctx, usr, uu)
}
