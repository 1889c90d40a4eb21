package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lavanderia/laundries-cli/internal/application"
	"github.com/lavanderia/laundries-cli/internal/domain"
	"github.com/lavanderia/laundries-cli/internal/ports"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string
	var basic bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in against the identity and staff-directory services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := ports.Credentials{Email: email, Password: password}

			var session domain.Session
			var err error
			if basic {
				session, err = app.sessions.LoginBasic(cmd.Context(), creds)
			} else {
				session, err = app.sessions.Login(cmd.Context(), creds)
			}
			if err != nil {
				return err
			}

			view := application.ViewFor(session.User.Role)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", session.User.Email, session.User.Role)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Landing: lops %s\n", view.Landing)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().BoolVar(&basic, "basic", false, "Skip the staff-profile phase and commit after the credential exchange")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and erase the durable session record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}
