package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Server.RateLimitPerMinute != 100 {
		t.Errorf("Expected rate limit 100, got %d", cfg.Server.RateLimitPerMinute)
	}
	if cfg.AccessTTL() != 15*time.Minute {
		t.Errorf("Expected access TTL 15m, got %v", cfg.AccessTTL())
	}
	if cfg.RefreshTTL() != 7*24*time.Hour {
		t.Errorf("Expected refresh TTL 7d, got %v", cfg.RefreshTTL())
	}
	if cfg.Database.Path == "" {
		t.Error("Expected a default database path")
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  addr: ":9999"
database:
  path: /tmp/test-journal.db
auth:
  jwt_secret: file-secret
  access_ttl_minutes: 5
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Expected addr :9999, got %s", cfg.Server.Addr)
	}
	if cfg.Database.Path != "/tmp/test-journal.db" {
		t.Errorf("Expected configured db path, got %s", cfg.Database.Path)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("Expected file secret, got %s", cfg.Auth.JWTSecret)
	}
	if cfg.AccessTTL() != 5*time.Minute {
		t.Errorf("Expected access TTL 5m, got %v", cfg.AccessTTL())
	}
	// Unset keys keep their defaults
	if cfg.Auth.RefreshTTLDays != 7 {
		t.Errorf("Expected default refresh TTL days 7, got %d", cfg.Auth.RefreshTTLDays)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected defaults, got addr %s", cfg.Server.Addr)
	}
}

func TestLoad_SecretFromEnv(t *testing.T) {
	t.Setenv("LAJOURNAL_JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("Expected env secret override, got %s", cfg.Auth.JWTSecret)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected parse error for malformed file")
	}
}
