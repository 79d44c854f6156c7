// Package config handles configuration loading and validation for feedboard.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/colonyops/feedboard/internal/core/comment"
	"gopkg.in/yaml.v3"
)

// GatewayMode selects how the client reaches comment storage.
type GatewayMode string

const (
	// ModeHTTP talks to a feedboard server over its REST API.
	ModeHTTP GatewayMode = "http"
	// ModeLocal reads and writes the local sqlite database directly.
	ModeLocal GatewayMode = "local"
)

// IsValid reports whether m is a known gateway mode.
func (m GatewayMode) IsValid() bool {
	return m == ModeHTTP || m == ModeLocal
}

// Config holds the application configuration.
type Config struct {
	Gateway  GatewayConfig  `yaml:"gateway"`
	Comments CommentsConfig `yaml:"comments"`
	TUI      TUIConfig      `yaml:"tui"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// GatewayConfig controls the comment gateway used by the CLI and TUI.
type GatewayConfig struct {
	Mode    GatewayMode   `yaml:"mode"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CommentsConfig holds the draft validation limits and prompts.
type CommentsConfig struct {
	MinLength     int    `yaml:"min_length"`
	MaxLength     int    `yaml:"max_length"`
	ConfirmDelete string `yaml:"confirm_delete"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme         string        `yaml:"theme"`
	PreviewWidth  int           `yaml:"preview_width"`
	ToastDuration time.Duration `yaml:"toast_duration"`
}

// ServerConfig holds settings for `feedboard serve`.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	JWTSecret      string        `yaml:"jwt_secret"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	SeedUsers      []SeedUser    `yaml:"seed_users"`
}

// SeedUser is an account created on server start when missing.
type SeedUser struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			Mode:    ModeLocal,
			BaseURL: "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Comments: CommentsConfig{
			MinLength:     comment.DefaultMinLength,
			MaxLength:     comment.DefaultMaxLength,
			ConfirmDelete: comment.DeleteConfirmMessage,
		},
		TUI: TUIConfig{
			Theme:         "tokyo-night",
			PreviewWidth:  80,
			ToastDuration: 5 * time.Second,
		},
		Server: ServerConfig{
			Addr:     ":5000",
			TokenTTL: 24 * time.Hour,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 2,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Gateway.Mode == "" {
		c.Gateway.Mode = defaults.Gateway.Mode
	}
	if c.Gateway.Timeout == 0 {
		c.Gateway.Timeout = defaults.Gateway.Timeout
	}
	if c.Comments.MinLength == 0 {
		c.Comments.MinLength = defaults.Comments.MinLength
	}
	if c.Comments.MaxLength == 0 {
		c.Comments.MaxLength = defaults.Comments.MaxLength
	}
	if c.Comments.ConfirmDelete == "" {
		c.Comments.ConfirmDelete = defaults.Comments.ConfirmDelete
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.PreviewWidth == 0 {
		c.TUI.PreviewWidth = defaults.TUI.PreviewWidth
	}
	if c.TUI.ToastDuration == 0 {
		c.TUI.ToastDuration = defaults.TUI.ToastDuration
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.TokenTTL == 0 {
		c.Server.TokenTTL = defaults.Server.TokenTTL
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !c.Gateway.Mode.IsValid() {
		return fmt.Errorf("gateway.mode %q must be %q or %q", c.Gateway.Mode, ModeHTTP, ModeLocal)
	}
	if c.Gateway.Mode == ModeHTTP && c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway.base_url is required in http mode")
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("gateway.timeout cannot be negative")
	}

	if c.Comments.MinLength < 1 {
		return fmt.Errorf("comments.min_length must be at least 1")
	}
	if c.Comments.MaxLength < c.Comments.MinLength {
		return fmt.Errorf("comments.max_length must not be less than comments.min_length")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	return nil
}

// CommentLimits returns the configured draft length limits.
func (c *Config) CommentLimits() comment.Limits {
	return comment.Limits{Min: c.Comments.MinLength, Max: c.Comments.MaxLength}
}

// DatabasePath returns the path of the local sqlite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "feedboard.db")
}

// SecretFile returns the path of the generated token signing secret used
// when server.jwt_secret is unset.
func (c *Config) SecretFile() string {
	return filepath.Join(c.DataDir, "jwt.secret")
}

// SessionFile returns the path to the stored login session.
func (c *Config) SessionFile() string {
	return filepath.Join(c.DataDir, "session.json")
}
