package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./coursetrack.db" {
			t.Errorf("expected database path ./coursetrack.db, got %s", config.Database.Path)
		}

		if config.Content.Path != "" || config.Content.URL != "" {
			t.Errorf("expected empty content source, got url=%q path=%q", config.Content.URL, config.Content.Path)
		}

		if config.Storage.KeyPrefix != "lt_" {
			t.Errorf("expected key prefix lt_, got %s", config.Storage.KeyPrefix)
		}

		if config.UI.Breakpoint != 100 {
			t.Errorf("expected breakpoint 100, got %d", config.UI.Breakpoint)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[content]
url = "https://example.com/training.json"
fallback_to_sample = true

[database]
path = "/custom/path.db"

[ui]
breakpoint = 140

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.UI.Breakpoint != 140 {
			t.Errorf("expected breakpoint 140, got %d", config.UI.Breakpoint)
		}

		if !config.Content.FallbackToSample {
			t.Error("expected fallback_to_sample to be true")
		}

		if config.Storage.KeyPrefix != "lt_" {
			t.Errorf("expected unset key prefix to keep default, got %q", config.Storage.KeyPrefix)
		}

		level, err := config.LogLevel()
		if err != nil || level != log.DebugLevel {
			t.Errorf("expected debug level, got %v (%v)", level, err)
		}
	})

	t.Run("LoadConfig Invalid", func(t *testing.T) {
		tt := []struct {
			name string
			body string
		}{
			{name: "negative breakpoint", body: "[ui]\nbreakpoint = -1\n"},
			{name: "unknown log level", body: "[log]\nlevel = \"loud\"\n"},
			{name: "empty database path", body: "[database]\npath = \"\"\n"},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tc.body), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(configPath)
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig Malformed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[ui\nbreakpoint ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})
}
