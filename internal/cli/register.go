package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// newRegisterCmd creates and returns a new register command
func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on the ticket-manager server",
		Long: `Create a new account. Registering logs the new account in immediately,
storing its session credential like login does.

Example:
  ticketctl register --name "Bob Example" --email bob@example.com \
    --password secret123 --confirm secret123`,
		RunE: runRegister,
	}

	cmd.Flags().String("name", "", "Display name for the new account")
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().String("confirm", "", "Password confirmation")
	return cmd
}

// runRegister handles the register command execution
func runRegister(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	allow, err := rt.navigate(ctx, "register")
	if err != nil || !allow {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	confirm, _ := cmd.Flags().GetString("confirm")

	err = rt.sessions.Register(ctx, session.Registration{
		Name:          name,
		Identifier:    email,
		Secret:        password,
		SecretConfirm: confirm,
	})
	if err != nil {
		snap := rt.sessions.Snapshot()
		if jsonOutput {
			printJSON(map[string]string{"error": snap.LastError})
		} else {
			errorLabel.Fprintf(cmd.ErrOrStderr(), "Registration failed: %s\n", snap.LastError)
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
		okLabel.Println("✓ Account created")
		fmt.Printf("Logged in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
	}

	return nil
}
