package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", config.Server.Port)
	}
	if config.Database.Path == "" {
		t.Error("expected default database path")
	}
	if config.Cache.PlaylistTTL() != 45*time.Second {
		t.Errorf("expected 45s playlist TTL, got %v", config.Cache.PlaylistTTL())
	}
	if config.Cache.PlaylistSweep() != 30*time.Second {
		t.Errorf("expected 30s playlist sweep, got %v", config.Cache.PlaylistSweep())
	}
	if config.Providers.YouTube.RateLimit <= 0 {
		t.Error("expected a positive default rate limit")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("ValidFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[server]
host = "0.0.0.0"
port = 8080

[database]
path = "test.db"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Address() != "0.0.0.0:8080" {
			t.Errorf("unexpected address %q", config.Server.Address())
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("MalformedFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when file already exists")
	}
}
