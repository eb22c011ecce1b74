// Package cli implements the ticketctl command tree. Each command is a thin
// screen: it resolves its route through the authorization gate, calls the API
// client, and renders the result. Business rules live server-side; the only
// client-side logic worth the name is the session lifecycle in
// internal/session.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
)

// ErrAlreadyHandled marks errors whose message was already rendered; Execute
// exits nonzero without printing them again.
var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ticketctl [command] [flags]",
	Short: "ticketctl - A command line client for the ticket-manager server",
	Long: `ticketctl is a command line client for the ticket-manager server.
It manages your authenticated session and lets you browse and edit tickets,
projects, users, and comments through the server's REST API.

Examples:
  # Log in and store the session credential
  ticketctl login --email alice@example.com --password secret

  # List open tickets
  ticketctl tickets list --status open

  # Show who you are logged in as
  ticketctl whoami

  # View the dashboard summary (managers and admins)
  ticketctl dashboard`,
	PersistentPreRun: preRunHandlePersistents,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	// Set up persistent flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")

	// Add commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newTicketsCmd())
	rootCmd.AddCommand(newProjectsCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newCommentsCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newSettingsCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			kv := map[string]string{
				"error": err.Error(),
			}
			printJSON(kv)
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// preRunHandlePersistents handles persistent flags and configuration loading before command execution
func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	if configFile == "" {
		var err error
		configFile, err = GetDefaultConfigPath()
		if err != nil {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// config and version work without a loaded configuration
	isConfig := false
	c := cmd
	for c != nil {
		if c.Name() == "config" || c.Name() == "version" {
			isConfig = true
			break
		}
		c = c.Parent()
	}

	if !isConfig {
		if err := LoadConfig(configFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("ticketctl config file not found. Configure the server with \"ticketctl config --server <host:port>\" first.")
				os.Exit(1)
			}
			fmt.Printf("%s\n", err.Error())
			os.Exit(1)
		}
	}
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ticketctl",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, err := GetDefaultConfigPath()
			if err != nil {
				configPath = "unknown"
			}

			if jsonOutput {
				kv := map[string]string{
					"version":     getCLIVersion(),
					"config_file": configPath,
				}
				printJSON(kv)
			} else {
				cmd.Printf("ticketctl %s\n", getCLIVersion())
				cmd.Printf("Config file: %s\n", configPath)
			}
		},
	}
}

// printJSON prints the given map as JSON to stdout
func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.2.0"
}
