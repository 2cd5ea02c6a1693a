package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup. It is built once
// in main and passed to the components that need it; nothing reads
// configuration from ambient globals after that.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Auth     Auth     `yaml:"auth"`
	Log      Log      `yaml:"log"`

	// BaseURL is the domain prefix prepended to generated short codes,
	// e.g. "http://127.0.0.1:8000/".
	BaseURL string `yaml:"base_url" env:"LINKSHORT_BASE_URL"`
}

// Server holds HTTP listener settings.
type Server struct {
	Port         int `yaml:"port" env:"LINKSHORT_PORT"`
	ReadTimeout  int `yaml:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout"`
}

// Database selects the GORM driver and its DSN.
type Database struct {
	Driver string `yaml:"driver" env:"LINKSHORT_DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"LINKSHORT_DB_DSN"`
}

// Auth holds the token signing secret and lifetime.
type Auth struct {
	Secret            string `yaml:"secret" env:"LINKSHORT_JWT_SECRET"`
	ExpirationMinutes int    `yaml:"expiration_minutes" env:"LINKSHORT_TOKEN_MINUTES"`
}

// Log holds the log file settings for rotation.
type Log struct {
	File       string `yaml:"file" env:"LINKSHORT_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// TokenTTL returns the configured access-token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.ExpirationMinutes) * time.Minute
}

// Default returns a config suitable for local development.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:         8000,
			ReadTimeout:  10,
			WriteTimeout: 10,
		},
		Database: Database{
			Driver: "sqlite",
			DSN:    "linkshort.db",
		},
		Auth: Auth{
			Secret:            "linkshort-dev-secret-change-in-production",
			ExpirationMinutes: 30,
		},
		Log: Log{
			File:       "./logs/linkshort.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		BaseURL: "http://127.0.0.1:8000/",
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment variable overrides. A missing file is not an error so the
// server can start from defaults plus environment alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}
