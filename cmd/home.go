package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lavanderia/laundries-cli/internal/domain"
)

func newHomeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Open the role-appropriate landing view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			return renderLandingFor(cmd, app, "")
		},
	}

	cmd.AddCommand(
		newRoleHomeCmd(app, "employee", "Open the employee landing view", domain.RoleEmployee),
		newRoleHomeCmd(app, "manager", "Open the manager landing view", domain.RoleManager),
		newRoleHomeCmd(app, "admin", "Open the admin landing view", domain.RoleAdmin),
	)

	return cmd
}

// newRoleHomeCmd wraps a role's home in its explicit allow-list. A
// session outside the list is shown its own landing, not an error.
func newRoleHomeCmd(app *app, use string, short string, allowed ...domain.Role) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admitted, err := requireRole(cmd, app, allowed...)
			if err != nil || !admitted {
				return err
			}

			return renderLandingFor(cmd, app, "")
		},
	}
}
