package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 9090
storage:
  driver: "sqlite"
  path: "/var/lib/gymlog/gymlog.db"
log:
  level: "debug"
tailscale:
  enabled: true
  hostname: "palestra"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Path != "/var/lib/gymlog/gymlog.db" {
		t.Errorf("storage.path = %q", cfg.Storage.Path)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.LogLevel())
	}
	if !cfg.Tailscale.Enabled || cfg.Tailscale.Hostname != "palestra" {
		t.Errorf("tailscale = %+v", cfg.Tailscale)
	}
	if cfg.Tailscale.StateDir != "tsnet-state" {
		t.Errorf("tailscale.state_dir = %q, want default", cfg.Tailscale.StateDir)
	}
}

// TestLoadDefaults verifies an empty path yields the defaults.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path != "gymlog.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("log level = %v, want info", cfg.LogLevel())
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale enabled by default")
	}
}

// TestPartialFileKeepsDefaults verifies fields absent from the file keep
// their default values.
func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "storage:\n  driver: memory\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != "memory" || cfg.Server.Port != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
}

// TestEnvOverride verifies that GYMLOG_* env vars override YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("GYMLOG_SERVER_PORT", "7000")
	t.Setenv("GYMLOG_STORAGE_PATH", "/tmp/other.db")
	t.Setenv("GYMLOG_LOG_LEVEL", "warn")
	t.Setenv("GYMLOG_TAILSCALE_ENABLED", "false")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("server.port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Storage.Path != "/tmp/other.db" {
		t.Errorf("storage.path = %q, want /tmp/other.db", cfg.Storage.Path)
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("log level = %v, want warn", cfg.LogLevel())
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale still enabled after env override")
	}
}

// TestEnvOverrideInvalidPortIgnored verifies a non-numeric port env var is skipped.
func TestEnvOverrideInvalidPortIgnored(t *testing.T) {
	t.Setenv("GYMLOG_SERVER_PORT", "eighty")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
}

// TestValidation verifies that bad values are rejected.
func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"port out of range", "server:\n  port: 70000\n"},
		{"unknown driver", "storage:\n  driver: postgres\n"},
		{"sqlite without path", "storage:\n  driver: sqlite\n  path: \"\"\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"tailscale without hostname", "tailscale:\n  enabled: true\n  hostname: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestLoadMissingFile verifies that a missing config file returns an error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestLoadMalformedYAML verifies a syntax error is reported.
func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeTemp(t, "server: [unclosed\n")); err == nil {
		t.Fatal("expected parse error")
	}
}
