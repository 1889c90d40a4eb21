package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	shelladapter "github.com/lavanderia/laundries-cli/internal/adapters/render/shell"
	"github.com/lavanderia/laundries-cli/internal/application"
	"github.com/lavanderia/laundries-cli/internal/domain"
)

var (
	errSessionInitializing = errors.New("session state is still initializing")
	errSignInRequired      = errors.New("sign in required")
)

// requireAuth gates a command on an authenticated session. On denial it
// prints the login redirect, keeping the requested route so the user
// can come back after signing in.
func requireAuth(cmd *cobra.Command, app *app) error {
	decision := app.gate.RequireAuth(commandRoute(cmd))

	switch decision.Kind {
	case application.DecisionAllow:
		return nil
	case application.DecisionPending:
		return errSessionInitializing
	default:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(),
			"Not signed in. Run `lops %s`, then retry `lops %s`.\n",
			decision.RedirectTo, decision.From)
		return errSignInRequired
	}
}

// requireRole gates a command on role membership. A denied role is not
// an error: the command falls open to the caller's own default landing,
// rendered with a notice.
func requireRole(cmd *cobra.Command, app *app, allowed ...domain.Role) (bool, error) {
	decision := app.gate.RequireRole(commandRoute(cmd), allowed...)

	switch decision.Kind {
	case application.DecisionAllow:
		return true, nil
	case application.DecisionPending:
		return false, errSessionInitializing
	case application.DecisionRedirectLogin:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(),
			"Not signed in. Run `lops %s`, then retry `lops %s`.\n",
			decision.RedirectTo, decision.From)
		return false, errSignInRequired
	default:
		notice := fmt.Sprintf("`lops %s` is not available for your role; showing `lops %s` instead.",
			decision.From, decision.RedirectTo)
		return false, renderLandingFor(cmd, app, notice)
	}
}

// renderLandingFor draws the caller's role-appropriate landing and
// shell, both resolved from the same routing table row.
func renderLandingFor(cmd *cobra.Command, app *app, notice string) error {
	snapshot := app.sessions.Snapshot()

	rendered, err := app.shellRenderer(
		shelladapter.View{
			Snapshot: snapshot,
			RoleView: application.ViewFor(snapshot.Session.User.Role),
		},
		shelladapter.RenderOptions{Now: app.now(), Notice: notice},
	)
	if err != nil {
		return fmt.Errorf("render landing: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// commandRoute is the command path without the binary name, e.g.
// "home admin".
func commandRoute(cmd *cobra.Command) string {
	path := cmd.CommandPath()
	if root := cmd.Root(); root != nil {
		path = strings.TrimPrefix(path, root.Name())
	}
	return strings.TrimSpace(path)
}
