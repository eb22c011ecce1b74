package cli

import (
	"github.com/spf13/cobra"
)

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long: `End the current session and remove the stored credential.
The server is notified best-effort; the local credential is removed even when
the server cannot be reached.`,
		RunE: runLogout,
	}
}

// runLogout handles the logout command execution
func runLogout(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	// no gate: logging out is always permitted, and it must succeed locally
	// even when the server call fails
	if err := rt.sessions.Logout(cmd.Context()); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]string{"status": "logged out"})
	} else {
		okLabel.Println("✓ Logged out")
	}
	return nil
}
