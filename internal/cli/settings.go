package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSettingsCmd creates the settings command group. The route is admin-only.
func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change server settings (admin only)",
	}
	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsUpdateCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the server settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "settings")
			if err != nil || !allow {
				return err
			}

			settings, err := rt.client.GetSettings(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"settings": settings})
				return nil
			}
			fmt.Printf("Site name: %s\n", settings.SiteName)
			if settings.Language != "" {
				fmt.Printf("Language: %s\n", settings.Language)
			}
			fmt.Printf("Notifications: %v\n", settings.NotificationsEnabled)
			return nil
		},
	}
}

func newSettingsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the server settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			allow, err := rt.navigate(ctx, "settings")
			if err != nil || !allow {
				return err
			}

			// read-modify-write so unset flags keep their server values
			settings, err := rt.client.GetSettings(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("site-name") {
				settings.SiteName, _ = cmd.Flags().GetString("site-name")
			}
			if cmd.Flags().Changed("language") {
				settings.Language, _ = cmd.Flags().GetString("language")
			}
			if cmd.Flags().Changed("notifications") {
				settings.NotificationsEnabled, _ = cmd.Flags().GetBool("notifications")
			}

			updated, err := rt.client.UpdateSettings(ctx, settings)
			if err != nil {
				return err
			}

			if jsonOutput {
				printJSON(map[string]any{"settings": updated})
				return nil
			}
			okLabel.Println("✓ Settings updated")
			return nil
		},
	}
	cmd.Flags().String("site-name", "", "Site display name")
	cmd.Flags().String("language", "", "Default language code")
	cmd.Flags().Bool("notifications", false, "Enable email notifications")
	return cmd
}
