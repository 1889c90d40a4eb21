package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lops",
		Short:         "Laundries Ops Console (lops): role-scoped access to branch operations",
		Long:          "lops is the terminal console for the multi-branch laundry backends: sign in against the identity and staff-directory services, keep a durable local session, and open role-scoped views.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	// Session state hydrates exactly once, before any command decides
	// anything.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.sessions.Hydrate(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newHomeCmd(app),
		newRegisterManagerCmd(app),
	)

	return rootCmd
}
