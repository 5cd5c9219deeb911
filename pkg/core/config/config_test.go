package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "720h", 720 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{2 * time.Hour}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "2h0m0s" {
		t.Errorf("MarshalText() = %v, want 2h0m0s", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "khamseena" {
		t.Errorf("General.Name = %v, want khamseena", cfg.General.Name)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.Frontend.MaxSourceBytes != 1<<20 {
		t.Errorf("Frontend.MaxSourceBytes = %v, want 1 MiB", cfg.Frontend.MaxSourceBytes)
	}
	if cfg.Frontend.DropComments {
		t.Error("Frontend.DropComments should default to false")
	}
	if cfg.Report.Format != "text" {
		t.Errorf("Report.Format = %v, want text", cfg.Report.Format)
	}
	if !strings.HasSuffix(cfg.History.Path, "history.db") {
		t.Errorf("History.Path = %v", cfg.History.Path)
	}
	if cfg.History.Retention.Duration != 720*time.Hour {
		t.Errorf("History.Retention = %v, want 720h", cfg.History.Retention.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/khamseena.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "khamseena.toml")

	configContent := `
[general]
name = "kitchen"
log_level = "debug"

[frontend]
drop_comments = true

[report]
format = "yaml"
show_tokens = true
show_scopes = true

[history]
enabled = true
path = "$KH_TEST_DIR/runs.db"
retention = "48h"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv("KH_TEST_DIR", tmpDir)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "kitchen" || cfg.General.LogLevel != "debug" {
		t.Errorf("General = %+v", cfg.General)
	}
	if !cfg.Frontend.DropComments {
		t.Error("Frontend.DropComments = false, want true")
	}
	if cfg.Report.Format != "yaml" || !cfg.Report.ShowTokens || cfg.Report.ShowAST || !cfg.Report.ShowScopes {
		t.Errorf("Report = %+v", cfg.Report)
	}
	if cfg.History.Path != filepath.Join(tmpDir, "runs.db") {
		t.Errorf("History.Path = %v, want expanded path", cfg.History.Path)
	}
	if cfg.History.Retention.Duration != 48*time.Hour {
		t.Errorf("History.Retention = %v, want 48h", cfg.History.Retention.Duration)
	}

	// Check defaults were applied for missing values
	if cfg.Frontend.MaxSourceBytes != 1<<20 {
		t.Errorf("Frontend.MaxSourceBytes = %v, want default", cfg.Frontend.MaxSourceBytes)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "[general\nname = 1"},
		{"bad format", "[report]\nformat = \"xml\""},
		{"bad duration", "[history]\nretention = \"soon\""},
		{"bad log format", "[general]\nlog_format = \"pretty\""},
		{"blank history path", "[history]\nenabled = true\npath = \"  \""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "khamseena.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[general]\nname = \"from-env\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvVar, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "from-env" {
		t.Errorf("General.Name = %v, want from-env", cfg.General.Name)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("HOME", t.TempDir())

	// Change to a temp directory without config files
	originalWd, _ := os.Getwd()
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	defer os.Chdir(originalWd)

	_, err := LoadFromEnv()
	if err == nil {
		t.Error("LoadFromEnv() expected error when no config found")
	}
}
