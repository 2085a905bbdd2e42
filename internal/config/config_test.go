package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

publish:
  max_batch_size: 100
  scan_limit: 250
  currency_symbol: "$"
  audit_history_limit: 25

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Publish
	if cfg.Publish.MaxBatchSize != 100 {
		t.Errorf("publish.max_batch_size = %d, want 100", cfg.Publish.MaxBatchSize)
	}
	if cfg.Publish.ScanLimit != 250 {
		t.Errorf("publish.scan_limit = %d, want 250", cfg.Publish.ScanLimit)
	}
	if cfg.Publish.CurrencySymbol != "$" {
		t.Errorf("publish.currency_symbol = %q, want %q", cfg.Publish.CurrencySymbol, "$")
	}
	if cfg.Publish.AuditHistoryLimit != 25 {
		t.Errorf("publish.audit_history_limit = %d, want 25", cfg.Publish.AuditHistoryLimit)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("PUBLISH_CURRENCY_SYMBOL", "€")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Publish.CurrencySymbol != "€" {
		t.Errorf("publish.currency_symbol = %q, want %q (ENV override)", cfg.Publish.CurrencySymbol, "€")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	// Set working dir to a temp dir with no config.yaml
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Publish.MaxBatchSize != 200 {
		t.Errorf("publish.max_batch_size = %d, want 200 (default)", cfg.Publish.MaxBatchSize)
	}
	if cfg.Server.WriteRateLimit != 120 {
		t.Errorf("server.write_rate_limit = %d, want 120 (default)", cfg.Server.WriteRateLimit)
	}
	if cfg.Publish.CurrencySymbol != "£" {
		t.Errorf("publish.currency_symbol = %q, want %q (default)", cfg.Publish.CurrencySymbol, "£")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Publish_MaxBatchSizeZero(t *testing.T) {
	cfg := validConfig()
	cfg.Publish.MaxBatchSize = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for MaxBatchSize = 0")
	}
}

func TestValidate_Publish_MaxBatchSizeNegative(t *testing.T) {
	cfg := validConfig()
	cfg.Publish.MaxBatchSize = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative MaxBatchSize")
	}
}

func TestValidate_Publish_ScanLimitZero(t *testing.T) {
	cfg := validConfig()
	cfg.Publish.ScanLimit = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for ScanLimit = 0")
	}
}

func TestValidate_Publish_CurrencySymbolEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Publish.CurrencySymbol = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty CurrencySymbol")
	}
}

func TestValidate_Publish_AuditHistoryLimitZero(t *testing.T) {
	cfg := validConfig()
	cfg.Publish.AuditHistoryLimit = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for AuditHistoryLimit = 0")
	}
}

func TestValidate_Server_WriteRateLimitZero(t *testing.T) {
	cfg := validConfig()
	cfg.Server.WriteRateLimit = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for WriteRateLimit = 0")
	}
}

func TestValidate_Publish_ValidBoundaryValues(t *testing.T) {
	cfg := validConfig()
	cfg.Publish.MaxBatchSize = 1
	cfg.Publish.ScanLimit = 1
	cfg.Publish.AuditHistoryLimit = 1

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for boundary values: %v", err)
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server: ServerConfig{
			WriteRateLimit: 120,
		},
		Publish: PublishConfig{
			MaxBatchSize:      200,
			ScanLimit:         500,
			CurrencySymbol:    "£",
			AuditHistoryLimit: 50,
		},
	}
}
