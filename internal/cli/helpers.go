package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"dvkit/internal/client"
	"dvkit/internal/config"
)

// resolveServer picks the target server.
// Priority: 1) --server flag (config entry name or raw hostname),
// 2) the config's current server, 3) DATAVERSE_HOST.
func resolveServer(cfg config.CLIConfig) (config.Server, error) {
	env := config.LoadEnv()

	if serverFlag != "" {
		if srv, exists := cfg.Servers[serverFlag]; exists {
			if verbose {
				fmt.Printf("🔍 Using configured server '%s' (%s)\n", serverFlag, srv.Hostname)
			}
			return srv, nil
		}
		// Not a configured name, treat it as a hostname
		return config.Server{Hostname: serverFlag, APIKey: env.APIKey}, nil
	}

	if cfg.Current != "" {
		srv, exists := cfg.Servers[cfg.Current]
		if !exists {
			return config.Server{}, fmt.Errorf("current server '%s' not found. Use 'dvkit server list' to see configured servers", cfg.Current)
		}
		return srv, nil
	}

	if env.Host != "" {
		return config.Server{Hostname: env.Host, APIKey: env.APIKey}, nil
	}

	return config.Server{}, fmt.Errorf("no server configured. Use 'dvkit server add' to add one or pass --server")
}

// newClient builds an API client for the resolved server.
func newClient(srv config.Server) (*client.Client, error) {
	opts := client.Options{
		APIKey:             srv.APIKey,
		InsecureSkipVerify: srv.Insecure || insecure,
	}

	if verbose {
		opts.Logger = hclog.New(&hclog.LoggerOptions{
			Name:  "dvkit",
			Level: hclog.Debug,
		})
	}

	return client.New(client.Installation{Hostname: srv.Hostname}, opts)
}

// printJSON pretty-prints a JSON payload to stdout
func printJSON(payload map[string]interface{}) error {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
