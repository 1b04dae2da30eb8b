package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:8000/api" {
			t.Errorf("expected API base URL http://localhost:8000/api, got %s", config.API.BaseURL)
		}

		if config.API.TimeoutSeconds != 10 {
			t.Errorf("expected API timeout 10s, got %d", config.API.TimeoutSeconds)
		}

		if config.Database.Path != "./modao.db" {
			t.Errorf("expected database path ./modao.db, got %s", config.Database.Path)
		}

		if config.YouTube.OEmbedURL != "https://www.youtube.com/oembed" {
			t.Errorf("expected oEmbed URL https://www.youtube.com/oembed, got %s", config.YouTube.OEmbedURL)
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

		testConfig := `[api]
base_url = "https://board.example.com/api"
timeout_seconds = 30

[session]
path = "/tmp/session.json"

[youtube]
oembed_url = "https://oembed.example.com"
rate_limit = 1.5

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://board.example.com/api" {
			t.Errorf("expected base URL https://board.example.com/api, got %s", config.API.BaseURL)
		}

		if config.API.TimeoutSeconds != 30 {
			t.Errorf("expected timeout 30, got %d", config.API.TimeoutSeconds)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.YouTube.RateLimit != 1.5 {
			t.Errorf("expected rate limit 1.5, got %f", config.YouTube.RateLimit)
		}
	})

	t.Run("Env Overrides", func(t *testing.T) {
		t.Setenv("MODAO_API_URL", "https://override.example.com/api")
		t.Setenv("MODAO_API_TIMEOUT", "42")

		config := DefaultConfig()

		if config.API.BaseURL != "https://override.example.com/api" {
			t.Errorf("expected env override for base URL, got %s", config.API.BaseURL)
		}

		if config.API.TimeoutSeconds != 42 {
			t.Errorf("expected env override for timeout, got %d", config.API.TimeoutSeconds)
		}
	})

	t.Run("SessionFile Expands Home", func(t *testing.T) {
		config := &Config{Session: SessionConfig{Path: "~/.modao/session.json"}}

		path := config.SessionFile()
		if path == "~/.modao/session.json" {
			t.Error("expected ~ to be expanded")
		}
		if filepath.Base(path) != "session.json" {
			t.Errorf("expected session.json basename, got %s", path)
		}
	})
}
