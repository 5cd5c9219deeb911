// ============================================================================
// Khamseena - Front end toolchain
// ============================================================================
//
// Package:     config
// Description: TOML configuration for the khc command line tool
// Author:      Mike Stoffels
// Created:     2025-10-19
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/msto63/khamseena/foundation/utils/stringx"
)

// EnvVar names the environment variable holding the config file path
const EnvVar = "KHAMSEENA_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Frontend FrontendConfig `toml:"frontend"`
	Report   ReportConfig   `toml:"report"`
	History  HistoryConfig  `toml:"history"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// FrontendConfig holds lexer and parser settings
type FrontendConfig struct {
	DropComments   bool `toml:"drop_comments"`
	MaxSourceBytes int  `toml:"max_source_bytes"`
}

// ReportConfig controls what the analyze command prints
type ReportConfig struct {
	Format     string `toml:"format"` // text, yaml or json
	ShowTokens bool   `toml:"show_tokens"`
	ShowAST    bool   `toml:"show_ast"`
	ShowScopes bool   `toml:"show_scopes"`
}

// HistoryConfig holds the analysis history store settings
type HistoryConfig struct {
	Enabled   bool     `toml:"enabled"`
	Path      string   `toml:"path"`
	Retention Duration `toml:"retention"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in paths
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from the KHAMSEENA_CONFIG environment variable
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		// Try default locations
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, fmt.Errorf("no config file found, set %s or create configs/khamseena.toml", EnvVar)
	}

	return Load(path)
}

// DefaultPaths lists the locations searched by LoadFromEnv, in order
func DefaultPaths() []string {
	return []string{
		"./configs/khamseena.toml",
		"./khamseena.toml",
		filepath.Join(os.Getenv("HOME"), ".config/khamseena/config.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "khamseena"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Frontend
	if c.Frontend.MaxSourceBytes == 0 {
		c.Frontend.MaxSourceBytes = 1 << 20
	}

	// Report
	if c.Report.Format == "" {
		c.Report.Format = "text"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(os.Getenv("HOME"), ".local/share/khamseena/history.db")
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("report.format must be text, yaml or json, got %q", c.Report.Format)
	}
	switch c.General.LogFormat {
	case "text", "console", "json", "logfmt":
	default:
		return fmt.Errorf("general.log_format must be text, json or logfmt, got %q", c.General.LogFormat)
	}
	if c.Frontend.MaxSourceBytes < 0 {
		return fmt.Errorf("frontend.max_source_bytes must not be negative")
	}
	if c.History.Retention.Duration < 0 {
		return fmt.Errorf("history.retention must not be negative")
	}
	if c.History.Enabled && stringx.IsBlank(c.History.Path) {
		return fmt.Errorf("history.path must not be blank when history is enabled")
	}
	return nil
}
