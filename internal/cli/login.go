package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the ticket-manager server",
		Long: `Login to the ticket-manager server to start an authenticated session.
On success the session credential is stored locally and attached to every
subsequent command until you log out.

Example:
  ticketctl login --email alice@example.com --password secret`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	allow, err := rt.navigate(ctx, "login")
	if err != nil || !allow {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" || password == "" {
		return errors.New("both --email and --password are required")
	}

	err = rt.sessions.Login(ctx, session.Credentials{
		Identifier: email,
		Secret:     password,
	})
	if err != nil {
		snap := rt.sessions.Snapshot()
		if jsonOutput {
			printJSON(map[string]string{"error": snap.LastError})
		} else {
			errorLabel.Fprintf(cmd.ErrOrStderr(), "Login failed: %s\n", snap.LastError)
		}
		return ErrAlreadyHandled
	}

	user := rt.sessions.Snapshot().User
	if jsonOutput {
		printJSON(map[string]any{
			"status": "success",
			"user":   user,
		})
	} else {
		okLabel.Println("✓ Login successful")
		fmt.Printf("Logged in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
	}

	return nil
}
