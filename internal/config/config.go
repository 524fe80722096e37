// Package config loads parkctl settings from a TOML file with
// environment overrides. Priority: environment > config file > defaults.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/example/parkctl/internal/notify"
)

const defaultBaseURL = "https://share.parkanizer.com/api"

type Config struct {
	Parkanizer ParkanizerConfig `toml:"parkanizer"`
	Booking    BookingConfig    `toml:"booking"`
	Secrets    SecretsConfig    `toml:"secrets"`
	History    HistoryConfig    `toml:"history"`
	Notifiers  NotifiersConfig  `toml:"notifiers"`
	Watch      WatchConfig      `toml:"watch"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ParkanizerConfig struct {
	BaseURL  string `toml:"base_url" validate:"required,url"`
	Username string `toml:"username" validate:"required,email"`
	Password string `toml:"password" validate:"required"`
}

type BookingConfig struct {
	Zone      string   `toml:"zone"`
	Spots     []string `toml:"spots"`
	LookAhead int      `toml:"look_ahead" validate:"min=0,max=31"`
}

// SecretsConfig locates the token store. When HashKey and BlockKey are
// unset the keys are derived from the account password.
type SecretsConfig struct {
	Path     string `toml:"path"`
	HashKey  string `toml:"hash_key"`
	BlockKey string `toml:"block_key"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type NotifiersConfig struct {
	SMTP *notify.MailConfig `toml:"smtp"`
}

type WatchConfig struct {
	Schedule string `toml:"schedule"`
}

type LoggingConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

// Load reads the config file at path (optional), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".parkctl")
	return &Config{
		Parkanizer: ParkanizerConfig{BaseURL: defaultBaseURL},
		Booking:    BookingConfig{},
		Secrets:    SecretsConfig{Path: filepath.Join(base, "secrets.dat")},
		History:    HistoryConfig{Path: filepath.Join(base, "history")},
		Watch:      WatchConfig{Schedule: "0 6 * * *"},
		Logging:    LoggingConfig{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PARKANIZER_USER"); v != "" {
		cfg.Parkanizer.Username = v
	}
	if v := os.Getenv("PARKANIZER_PASSWORD"); v != "" {
		cfg.Parkanizer.Password = v
	}
	if v := os.Getenv("PARKANIZER_BASE_URL"); v != "" {
		cfg.Parkanizer.BaseURL = v
	}
	if v := os.Getenv("PARKCTL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

// SecretKeys returns the explicitly configured store keys, decoded from
// base64. Both must be set together; (nil, nil, nil) means derive from
// the password instead.
func (c *Config) SecretKeys() (hash, block []byte, err error) {
	if c.Secrets.HashKey == "" && c.Secrets.BlockKey == "" {
		return nil, nil, nil
	}
	if c.Secrets.HashKey == "" || c.Secrets.BlockKey == "" {
		return nil, nil, fmt.Errorf("secrets.hash_key and secrets.block_key must both be set")
	}
	hash, err = base64.StdEncoding.DecodeString(c.Secrets.HashKey)
	if err != nil {
		return nil, nil, fmt.Errorf("secrets.hash_key: %w", err)
	}
	block, err = base64.StdEncoding.DecodeString(c.Secrets.BlockKey)
	if err != nil {
		return nil, nil, fmt.Errorf("secrets.block_key: %w", err)
	}
	return hash, block, nil
}
