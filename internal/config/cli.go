package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Server is one configured Dataverse installation.
type Server struct {
	Hostname string `toml:"hostname"`
	APIKey   string `toml:"api_key,omitempty"`
	Insecure bool   `toml:"insecure,omitempty"` // skip TLS verification
}

// CLIConfig is the on-disk CLI configuration.
type CLIConfig struct {
	Current string            `toml:"current"`
	Servers map[string]Server `toml:"servers"`
}

// ConfigDir returns the CLI config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dvkit"), nil
}

// ConfigPath returns the full path to config.toml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadCLI loads CLI configuration from ~/.dvkit/config.toml
func LoadCLI() (CLIConfig, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		// Return empty config if file doesn't exist
		return CLIConfig{
			Servers: make(map[string]Server),
		}, nil
	}
	if err != nil {
		return CLIConfig{}, err
	}

	var config CLIConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return CLIConfig{}, err
	}

	if config.Servers == nil {
		config.Servers = make(map[string]Server)
	}

	return config, nil
}

// SaveCLI saves CLI configuration to ~/.dvkit/config.toml. The file is
// written mode 0600 since it can carry API keys.
func SaveCLI(config CLIConfig) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}
