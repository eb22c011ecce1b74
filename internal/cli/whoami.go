package cli

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// newWhoamiCmd creates and returns a new whoami command
func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		Long: `Show the identity of the current session: name, email, and role.
When the stored credential is a JWT its expiry is shown as well; opaque
credentials simply omit it.

Example:
  ticketctl whoami`,
		RunE: runWhoami,
	}
}

// runWhoami handles the whoami command execution
func runWhoami(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	allow, err := rt.navigate(ctx, "whoami")
	if err != nil || !allow {
		return err
	}

	user := rt.sessions.Snapshot().User
	expiry := credentialExpiry(rt)

	if jsonOutput {
		kv := map[string]any{"user": user}
		if !expiry.IsZero() {
			kv["credential_expires_at"] = expiry.Format(time.RFC3339)
		}
		printJSON(kv)
		return nil
	}

	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	fmt.Printf("Role: %s\n", user.Role)
	if !expiry.IsZero() {
		fmt.Printf("Credential expires: %s\n", expiry.Local().Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// credentialExpiry extracts the expiry claim from the stored credential
// without verifying it; the server remains the authority on validity. Opaque
// (non-JWT) credentials yield a zero time.
func credentialExpiry(rt *runtime) time.Time {
	token, err := rt.store.Load()
	if err != nil || token == "" {
		return time.Time{}
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
