package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logging  LogConfig
	Terminal TerminalConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8700"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// TerminalConfig holds terminal driver configuration.
type TerminalConfig struct {
	// ScratchDir holds per-session channel artifacts (pipes, logs,
	// markers, launcher scripts). Empty means <os temp>/termbridge.
	ScratchDir string `envconfig:"TERM_SCRATCH_DIR" default:""`

	// CloseGrace is how long to wait after signaling a polling
	// session to exit before its artifacts are removed.
	CloseGrace time.Duration `envconfig:"TERM_CLOSE_GRACE" default:"2s"`

	// SpawnWait is how long to wait for a freshly launched window's
	// agent script to report its pid.
	SpawnWait time.Duration `envconfig:"TERM_SPAWN_WAIT" default:"500ms"`

	// MaxOutputLines caps a single transcript read.
	MaxOutputLines int `envconfig:"TERM_MAX_OUTPUT_LINES" default:"1000"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8700",
			Host: "127.0.0.1",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Terminal: TerminalConfig{
			ScratchDir:     "",
			CloseGrace:     2 * time.Second,
			SpawnWait:      500 * time.Millisecond,
			MaxOutputLines: 1000,
		},
	}
}
