package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dvkit/internal/config"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage configured servers",
	Long: `Manage Dataverse server configurations.

Configured servers are stored in ~/.dvkit/config.toml and can be
selected per command with the --server flag.`,
}

// serverAddCmd adds a new server
var serverAddCmd = &cobra.Command{
	Use:   "add <name> <hostname>",
	Short: "Add a new server",
	Long: `Add a new Dataverse server configuration.

Examples:
  dvkit server add demo demo.dataverse.org
  dvkit server add harvard https://dataverse.harvard.edu`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerAdd(args[0], args[1])
	},
}

// serverListCmd lists configured servers
var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured servers",
	Long:  `List all configured servers showing name, hostname, and active status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerList()
	},
}

// serverUseCmd sets the active server
var serverUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active server",
	Long: `Set the active server for queries.

The active server is used when no --server flag is specified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerUse(args[0])
	},
}

// serverRemoveCmd removes a server
var serverRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerRemove(args[0])
	},
}

func runServerAdd(name, hostname string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Servers[name] = config.Server{
		Hostname: hostname,
		Insecure: insecure,
	}

	// Set as current if it's the first one
	if cfg.Current == "" {
		cfg.Current = name
	}

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Added server '%s'\n", name)
	fmt.Printf("🌐 Host: %s\n", hostname)

	if cfg.Current == name {
		fmt.Printf("⭐ Set as active server\n")
	}

	fmt.Printf("💡 Store an API key with: dvkit auth set-key --server %s\n", name)

	return nil
}

func runServerList() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Servers) == 0 {
		fmt.Printf("No servers configured.\n")
		fmt.Printf("Add a server with: dvkit server add <name> <hostname>\n")
		return nil
	}

	fmt.Printf("📋 Configured servers:\n\n")
	for name, srv := range cfg.Servers {
		marker := "  "
		if cfg.Current == name {
			marker = "* "
		}

		fmt.Printf("%s%s\n", marker, name)
		fmt.Printf("    Host: %s\n", srv.Hostname)

		if srv.APIKey != "" {
			fmt.Printf("    API Key: [configured]\n")
		}
		if srv.Insecure {
			fmt.Printf("    TLS verification: disabled\n")
		}

		fmt.Printf("\n")
	}

	if cfg.Current != "" {
		fmt.Printf("* = active server\n")
	}

	return nil
}

func runServerUse(name string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, exists := cfg.Servers[name]; !exists {
		return fmt.Errorf("server '%s' not found. Use 'dvkit server list' to see configured servers", name)
	}

	cfg.Current = name

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Set '%s' as active server\n", name)
	fmt.Printf("🌐 Host: %s\n", cfg.Servers[name].Hostname)

	return nil
}

func runServerRemove(name string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv, exists := cfg.Servers[name]
	if !exists {
		return fmt.Errorf("server '%s' not found. Use 'dvkit server list' to see configured servers", name)
	}

	delete(cfg.Servers, name)

	if cfg.Current == name {
		cfg.Current = ""
		fmt.Printf("⚠️  Removed active server. Use 'dvkit server use' to set a new active server.\n")
	}

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Removed server '%s'\n", name)
	fmt.Printf("🌐 Host was: %s\n", srv.Hostname)

	return nil
}

func init() {
	serverCmd.AddCommand(serverAddCmd)
	serverCmd.AddCommand(serverListCmd)
	serverCmd.AddCommand(serverUseCmd)
	serverCmd.AddCommand(serverRemoveCmd)
}
