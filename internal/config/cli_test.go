package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCLIMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadCLI()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Current != "" {
		t.Errorf("expected empty current server, got %q", cfg.Current)
	}
	if cfg.Servers == nil {
		t.Error("Servers map should be initialized")
	}
	if len(cfg.Servers) != 0 {
		t.Errorf("expected no servers, got %d", len(cfg.Servers))
	}
}

func TestSaveAndLoadCLI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	original := CLIConfig{
		Current: "demo",
		Servers: map[string]Server{
			"demo": {
				Hostname: "demo.dataverse.org",
				APIKey:   "secret-key",
			},
			"local": {
				Hostname: "localhost:8080",
				Insecure: true,
			},
		},
	}

	if err := SaveCLI(original); err != nil {
		t.Fatalf("SaveCLI failed: %v", err)
	}

	loaded, err := LoadCLI()
	if err != nil {
		t.Fatalf("LoadCLI failed: %v", err)
	}

	if loaded.Current != "demo" {
		t.Errorf("expected current 'demo', got %q", loaded.Current)
	}
	if len(loaded.Servers) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(loaded.Servers))
	}
	if loaded.Servers["demo"].Hostname != "demo.dataverse.org" {
		t.Errorf("unexpected hostname: %q", loaded.Servers["demo"].Hostname)
	}
	if loaded.Servers["demo"].APIKey != "secret-key" {
		t.Errorf("unexpected API key: %q", loaded.Servers["demo"].APIKey)
	}
	if !loaded.Servers["local"].Insecure {
		t.Error("insecure flag should round-trip")
	}
}

func TestSaveCLIFilePermissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SaveCLI(CLIConfig{Servers: map[string]Server{}}); err != nil {
		t.Fatalf("SaveCLI failed: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	// The config can hold API keys so it must not be world-readable
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(home, ".dvkit", "config.toml")
	if path != want {
		t.Errorf("expected %q, got %q", want, path)
	}
}
