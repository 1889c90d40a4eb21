package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type whoamiOutput struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Role     string         `json:"role"`
	BranchID string         `json:"branchId,omitempty"`
	Profile  *whoamiProfile `json:"profile,omitempty"`
}

type whoamiProfile struct {
	StaffID string `json:"staffId"`
	Name    string `json:"name"`
}

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			session := app.sessions.Snapshot().Session

			if asJSON {
				output := whoamiOutput{
					ID:    session.User.ID,
					Email: session.User.Email,
					Role:  string(session.User.Role),
				}
				if session.Profile != nil {
					output.BranchID = session.Profile.BranchID
					output.Profile = &whoamiProfile{
						StaffID: session.Profile.StaffID,
						Name:    session.Profile.Name,
					}
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(output)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", session.User.Email, session.User.Role)
			if session.Profile != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "staff: %s (%s)\n", session.Profile.Name, session.Profile.StaffID)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "branch: %s\n", session.Profile.BranchID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
