package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:8080/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.AccessTimeout != 10*time.Second {
		t.Errorf("API.AccessTimeout = %v, want 10s", cfg.API.AccessTimeout)
	}
	if cfg.API.DebounceWindow != 500*time.Millisecond {
		t.Errorf("API.DebounceWindow = %v, want 500ms", cfg.API.DebounceWindow)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing config file", err)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want default 30s", cfg.API.Timeout)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("api:\n  base_url: https://portal.example.com/api\nserver:\n  port: 9090\nlog:\n  level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0600); err != nil {
		t.Fatal(err)
	}
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load("config")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "https://portal.example.com/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Keys the file omits keep their defaults.
	if cfg.Storage.Backend != "file" {
		t.Errorf("Storage.Backend = %q, want file", cfg.Storage.Backend)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: 9090\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0600); err != nil {
		t.Fatal(err)
	}
	restore := chdir(t, dir)
	defer restore()

	t.Setenv("HTFS_SERVER_PORT", "7000")

	cfg, err := Load("config")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want env override 7000", cfg.Server.Port)
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return func() { os.Chdir(prev) }
}
