package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lavanderia/laundries-cli/internal/domain"
	"github.com/lavanderia/laundries-cli/internal/ports"
)

func newRegisterManagerCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register-manager",
		Short: "Create a branch-manager account (admins only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			admitted, err := requireRole(cmd, app, domain.RoleAdmin)
			if err != nil || !admitted {
				return err
			}

			accessToken, err := app.sessions.AccessToken()
			if err != nil {
				return err
			}

			creds := ports.Credentials{Email: email, Password: password}
			if err := app.identity.Register(cmd.Context(), accessToken, creds, domain.RoleManager); err != nil {
				return fmt.Errorf("register manager account: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created manager account %s\n", email)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New manager email")
	cmd.Flags().StringVar(&password, "password", "", "New manager password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
