package cli

import (
	"fmt"

	"github.com/alexanderramin/cinder/internal/cli/formatter"
	"github.com/alexanderramin/cinder/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd(app), newUserListCmd(app))
	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var email, fullName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				if !app.interactive() {
					return fmt.Errorf("--email is required")
				}
				if err := userForm(&email, &fullName).Run(); err != nil {
					return err
				}
			}

			u, err := app.Users.Create(cmd.Context(), email, fullName)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), u, func() string {
				return fmt.Sprintf("Created user %s <%s>\n%s", formatter.Bold(u.ID), u.Email,
					formatter.Dim("export CINDER_USER="+u.ID))
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&fullName, "name", "", "Full name")
	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			if users == nil {
				users = []*domain.User{}
			}
			return app.render(cmd.OutOrStdout(), users, func() string {
				if len(users) == 0 {
					return "No users yet. Create one with: cinder user add --email you@example.com"
				}
				rows := make([][]string, 0, len(users))
				for _, u := range users {
					rows = append(rows, []string{u.ID, u.Email, u.FullName, formatter.HumanDate(u.CreatedAt, app.now())})
				}
				return formatter.RenderBox("Users", formatter.RenderTable([]string{"ID", "EMAIL", "NAME", "CREATED"}, rows))
			})
		},
	}
}
