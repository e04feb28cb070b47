package cli

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dvkit/internal/config"
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API keys",
	Long: `Manage API keys for configured servers.

An API key is sent as the X-Dataverse-key header and unlocks
permission-restricted content on the server.`,
}

// authSetKeyCmd stores an API key for a server
var authSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store an API key for a server",
	Long: `Store an API key for a configured server.

The key is read from a hidden prompt and saved to ~/.dvkit/config.toml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetKey()
	},
}

// authClearKeyCmd removes a stored API key
var authClearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove a stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClearKey()
	},
}

func runSetKey() error {
	cfg, name, srv, err := targetServer()
	if err != nil {
		return err
	}

	fmt.Printf("API key for %s: ", srv.Hostname)
	keyBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Printf("\n")
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	srv.APIKey = key
	cfg.Servers[name] = srv

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Stored API key for '%s'\n", name)
	return nil
}

func runClearKey() error {
	cfg, name, srv, err := targetServer()
	if err != nil {
		return err
	}

	if srv.APIKey == "" {
		fmt.Printf("No API key stored for '%s'\n", name)
		return nil
	}

	srv.APIKey = ""
	cfg.Servers[name] = srv

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Removed API key for '%s'\n", name)
	return nil
}

// targetServer resolves the server an auth command operates on:
// --server flag first, then the active server.
func targetServer() (config.CLIConfig, string, config.Server, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return config.CLIConfig{}, "", config.Server{}, fmt.Errorf("failed to load config: %w", err)
	}

	name := serverFlag
	if name == "" {
		name = cfg.Current
	}
	if name == "" {
		return config.CLIConfig{}, "", config.Server{}, fmt.Errorf("no server specified. Use --server or set an active server with 'dvkit server use'")
	}

	srv, exists := cfg.Servers[name]
	if !exists {
		return config.CLIConfig{}, "", config.Server{}, fmt.Errorf("server '%s' not found. Use 'dvkit server list' to see configured servers", name)
	}

	return cfg, name, srv, nil
}

func init() {
	authCmd.AddCommand(authSetKeyCmd)
	authCmd.AddCommand(authClearKeyCmd)
}
