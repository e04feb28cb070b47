package config

import (
	"fmt"
	"os"
	"strings"
)

// Env holds connection defaults read from the environment. They apply
// when neither a flag nor a config file entry names a server.
type Env struct {
	Host   string
	APIKey string
}

// LoadEnv reads connection defaults from the environment.
func LoadEnv() Env {
	return Env{
		Host:   getEnv("DATAVERSE_HOST", ""),
		APIKey: os.Getenv("DATAVERSE_API_KEY"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvFile loads KEY=value pairs from a file into the process
// environment. Blank lines and #-comments are skipped, and variables
// already set in the environment win over file values.
func LoadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("invalid line in %s: %q", path, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return nil
}
