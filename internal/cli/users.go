package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yamadatarousan/ticket-manager/internal/api"
	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// newUsersCmd creates the users command group. The route is admin-only; other
// roles are redirected to the default screen.
func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin only)",
	}
	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersUpdateCmd())
	cmd.AddCommand(newUsersDeleteCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "users")
			if err != nil || !allow {
				return err
			}

			pageNum, _ := cmd.Flags().GetInt("page")
			perPage, _ := cmd.Flags().GetInt("per-page")
			page, err := rt.client.ListUsers(ctx, pageNum, perPage)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{
					"items": page.Items,
					"total": page.Total,
					"page":  page.Page,
				})
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
			for _, u := range page.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
			}
			w.Flush()
			if page.TotalPages > 1 {
				fmt.Printf("\nPage %d of %d (%d users)\n", page.Page, page.TotalPages, page.Total)
			}
			return nil
		},
	}
	cmd.Flags().Int("page", 0, "Page number")
	cmd.Flags().Int("per-page", 0, "Items per page")
	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "users")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			user, err := rt.client.GetUser(ctx, id)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"user": user})
				return nil
			}
			fmt.Printf("User #%d: %s <%s>\n", user.ID, user.Name, user.Email)
			fmt.Printf("Role: %s\n", user.Role)
			return nil
		},
	}
}

func newUsersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "users")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			input := api.UserInput{}
			input.Name, _ = cmd.Flags().GetString("name")
			input.Email, _ = cmd.Flags().GetString("email")
			role, _ := cmd.Flags().GetString("role")
			if role != "" {
				r := session.Role(role)
				if !r.Valid() {
					return fmt.Errorf("invalid role: %s", role)
				}
				input.Role = r
			}

			user, err := rt.client.UpdateUser(ctx, id, input)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"user": user})
				return nil
			}
			okLabel.Printf("✓ Updated user #%d\n", user.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "New display name")
	cmd.Flags().String("email", "", "New email")
	cmd.Flags().String("role", "", "New role (user, manager, admin)")
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "users")
			if err != nil || !allow {
				return err
			}

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := rt.client.DeleteUser(ctx, id); err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]int64{"deleted": id})
				return nil
			}
			okLabel.Printf("✓ Deleted user #%d\n", id)
			return nil
		},
	}
}
