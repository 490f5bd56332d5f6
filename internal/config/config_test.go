package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"RUBRIC_PORT", "RUBRIC_METRICS_PORT", "RUBRIC_ADMIN_TOKEN",
		"RUBRIC_DATABASE_URL", "RUBRIC_EVENTS_URL",
		"RUBRIC_STATS_INTERVAL_MS", "RUBRIC_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Events.MaxReconnects != 60 {
		t.Errorf("expected 60 max reconnects, got %d", cfg.Events.MaxReconnects)
	}
	if cfg.Events.ReconnectWait() != 2*time.Second {
		t.Errorf("expected 2s reconnect wait, got %s", cfg.Events.ReconnectWait())
	}
	if cfg.Events.StreamMaxAge() != 720*time.Hour {
		t.Errorf("expected 720h stream retention, got %s", cfg.Events.StreamMaxAge())
	}
	if cfg.Pipeline.StatsIntervalMs != 60000 {
		t.Errorf("expected stats interval 60000, got %d", cfg.Pipeline.StatsIntervalMs)
	}
	if cfg.StatsInterval() != time.Minute {
		t.Errorf("expected 1m stats interval, got %s", cfg.StatsInterval())
	}
	if cfg.Ranking.DefaultReportTitle == "" {
		t.Error("expected a default report title")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	content := `
server:
  port: 9100
  admin_token: secret
database:
  url: postgres://localhost/rubric_test
pipeline:
  stats_interval_ms: 5000
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "secret" {
		t.Errorf("expected admin token from file, got %q", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/rubric_test" {
		t.Errorf("unexpected database URL %q", cfg.Database.URL)
	}
	if cfg.Pipeline.StatsIntervalMs != 5000 {
		t.Errorf("expected stats interval 5000, got %d", cfg.Pipeline.StatsIntervalMs)
	}
	// Values absent from the file keep their defaults.
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RUBRIC_PORT", "9200")
	t.Setenv("RUBRIC_DATABASE_URL", "postgres://env/rubric")
	t.Setenv("RUBRIC_ADMIN_TOKEN", "env-token")
	t.Setenv("RUBRIC_STATS_INTERVAL_MS", "1000")
	t.Setenv("RUBRIC_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("env port override failed, got %d", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://env/rubric" {
		t.Errorf("env database override failed, got %q", cfg.Database.URL)
	}
	if cfg.Server.AdminToken != "env-token" {
		t.Errorf("env token override failed, got %q", cfg.Server.AdminToken)
	}
	if cfg.Pipeline.StatsIntervalMs != 1000 {
		t.Errorf("env stats interval override failed, got %d", cfg.Pipeline.StatsIntervalMs)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("env log level override failed, got %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("RUBRIC_PORT", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8700 {
		t.Errorf("invalid env port must keep the default, got %d", cfg.Server.Port)
	}
}
