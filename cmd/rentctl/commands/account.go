package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

const generatedPasswordLength = 12

func seedCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the first admin account in an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = a.cfg.Admin.Email
			}

			if password == "" {
				password = a.cfg.Admin.Password
			}

			if password == "" {
				return fmt.Errorf("password required (--password or ADMIN_PASSWORD)")
			}

			created, err := a.rental.Seed(cmd.Context(), rental.UserParams{
				Name:     "Administrator",
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), "Store already has users, nothing seeded")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Admin account %s created\n", rental.NormalizeEmail(email))

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (default ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default ADMIN_PASSWORD)")

	return cmd
}

func userCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(userCreateCmd(a), userListCmd(a))

	return cmd
}

func userCreateCmd(a *app) *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account with any role (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			actor, err := a.actorWithRole(ctx, rental.RoleAdmin)
			if err != nil {
				return err
			}

			generated := password == ""
			if generated {
				if password, err = auth.RandomPassword(generatedPasswordLength); err != nil {
					return err
				}
			}

			u, err := a.rental.CreateUser(ctx, actor, rental.UserParams{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     rental.Role(role),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (id %d)\n", u.Role, u.Email, u.ID)

			if generated {
				fmt.Fprintf(cmd.OutOrStdout(), "Temporary password: %s\n", password)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password (generated when empty)")
	cmd.Flags().StringVar(&role, "role", string(rental.RoleTenant), "admin, manager, owner, tenant or vendor")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func userListCmd(a *app) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if _, err := a.actorWithRole(ctx, rental.RoleAdmin); err != nil {
				return err
			}

			var filter *rental.Role
			if role != "" {
				filter = new(rental.Role(role))
			}

			users, err := a.rental.Users(ctx, filter)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{fmt.Sprint(u.ID), u.Name, u.Email, string(u.Role)})
			}

			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "ROLE"}, rows)

			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "only list accounts with this role")

	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				err := huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Run()
				if err != nil {
					return err
				}
			}

			u, err := a.rental.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", u.Email, u.Role)

			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted when empty)")

	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.rental.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.actor(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", u.Name, u.Email, u.Role)

			return nil
		},
	}
}
