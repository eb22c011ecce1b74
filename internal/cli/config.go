package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yamadatarousan/ticket-manager/internal/authgate"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Config represents the configuration for ticketctl. The bearer credential is
// NOT stored here; it lives in its own file managed by internal/credstore.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// ServerURL is the URL and port of the ticket-manager server
	ServerURL string `yaml:"server_url"`
	// DefaultScreen is the landing screen redirects send the user to.
	// Defaults to the tickets list when unset.
	DefaultScreen string `yaml:"default_screen,omitempty"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file
// (e.g. ~/.config/ticketctl/config.yaml on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "ticketctl", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file. A
// TICKETCTL_SERVER_URL environment variable (optionally via a .env file)
// overrides the configured server, and suffices on its own when no config
// file exists yet.
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	envURL := os.Getenv("TICKETCTL_SERVER_URL")

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) && envURL != "" {
			config = &Config{Version: "0.1.0", ServerURL: MorphServer(envURL)}
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	if envURL != "" {
		c.ServerURL = envURL
	}
	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}
	c.ServerURL = MorphServer(c.ServerURL)

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the current configuration to the specified file
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// DefaultRoute returns the landing screen for redirect-to-default outcomes.
// An unknown configured screen falls back to the built-in default rather
// than failing navigation.
func (cfg *Config) DefaultRoute() string {
	if cfg.DefaultScreen != "" {
		if _, ok := authgate.Lookup(cfg.DefaultScreen); ok {
			return cfg.DefaultScreen
		}
	}
	return authgate.DefaultRoute
}

// MorphServer ensures the server URL is properly formatted: adds https:// if
// no protocol is specified and removes trailing slashes.
func MorphServer(server string) string {
	if server == "" {
		return server
	}

	server = strings.TrimRight(server, "/")

	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	return server
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `Manage CLI configuration settings like the server connection and the default landing screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverFlag, _ := cmd.Flags().GetString("server")
		screenFlag, _ := cmd.Flags().GetString("default-screen")
		if serverFlag != "" || screenFlag != "" {
			return setConfig(serverFlag, screenFlag)
		}

		cmd.Help()
		return nil
	},
}

func init() {
	configCmd.Flags().String("server", "", "Set the server URL and port (e.g., example.com:8080)")
	configCmd.Flags().String("default-screen", "", "Set the landing screen redirects send you to")

	rootCmd.AddCommand(configCmd)
}

// setConfig updates the configuration file with the given values, keeping
// existing values for flags not provided.
func setConfig(server, screen string) error {
	configPath := configFile
	if configPath == "" {
		var err error
		configPath, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	cfg := &Config{Version: "0.1.0"}
	if err := LoadConfig(configPath); err == nil {
		cfg = GetConfig()
	}

	if server != "" {
		if !strings.Contains(server, ":") {
			return errors.New("server must include port number (e.g., example.com:8080)")
		}
		cfg.ServerURL = MorphServer(server)
	}
	if screen != "" {
		if _, ok := authgate.Lookup(screen); !ok {
			return fmt.Errorf("unknown screen: %s", screen)
		}
		cfg.DefaultScreen = screen
	}

	if err := cfg.WriteConfig(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"server":      cfg.ServerURL,
			"config_file": configPath,
		})
	} else {
		fmt.Printf("Server configured: %s\n", cfg.ServerURL)
		fmt.Printf("Config file: %s\n", configPath)
	}

	return nil
}
