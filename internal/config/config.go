package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Ranking  RankingConfig  `yaml:"ranking"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
	// MaxReconnects and ReconnectWaitMs shape the client's reconnect policy.
	MaxReconnects   int `yaml:"max_reconnects"`
	ReconnectWaitMs int `yaml:"reconnect_wait_ms"`
	// StreamMaxAgeHours bounds event retention in the stream.
	StreamMaxAgeHours int `yaml:"stream_max_age_hours"`
}

func (e EventsConfig) ReconnectWait() time.Duration {
	return time.Duration(e.ReconnectWaitMs) * time.Millisecond
}

func (e EventsConfig) StreamMaxAge() time.Duration {
	return time.Duration(e.StreamMaxAgeHours) * time.Hour
}

type PipelineConfig struct {
	// StatsIntervalMs is how often aggregate dashboard stats are published.
	// 0 disables the ticker.
	StatsIntervalMs int `yaml:"stats_interval_ms"`
}

type RankingConfig struct {
	// DefaultReportTitle is used when a report request carries no title.
	DefaultReportTitle string `yaml:"default_report_title"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Pipeline.StatsIntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL:               "nats://localhost:4222",
			MaxReconnects:     60,
			ReconnectWaitMs:   2000,
			StreamMaxAgeHours: 720,
		},
		Pipeline: PipelineConfig{
			StatsIntervalMs: 60000,
		},
		Ranking: RankingConfig{
			DefaultReportTitle: "Technical Evaluation Report",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RUBRIC_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("RUBRIC_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("RUBRIC_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("RUBRIC_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("RUBRIC_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("RUBRIC_STATS_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.StatsIntervalMs = n
		}
	}
	if v := os.Getenv("RUBRIC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
