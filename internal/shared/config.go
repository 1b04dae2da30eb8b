package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Session  SessionConfig  `toml:"session"`
	YouTube  YouTubeConfig  `toml:"youtube"`
	Database DatabaseConfig `toml:"database"`
}

// APIConfig contains settings for the suggestion board REST API.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SessionConfig contains settings for local session persistence.
type SessionConfig struct {
	Path string `toml:"path"`
}

// YouTubeConfig contains settings for the oEmbed enrichment lookup.
type YouTubeConfig struct {
	OEmbedURL string  `toml:"oembed_url"`
	RateLimit float64 `toml:"rate_limit"`
}

// DatabaseConfig contains local cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SessionFile resolves the session persistence path, expanding a leading ~.
func (c *Config) SessionFile() string {
	path := c.Session.Path
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// A .env file in the working directory and MODAO_* environment variables
// override file values, so deployments can point the CLI at another backend
// without editing config.toml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&config)

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	applyEnvOverrides(&config)
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides layers .env and MODAO_* variables over the parsed config.
func applyEnvOverrides(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MODAO_API_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv("MODAO_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			config.API.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("MODAO_SESSION_PATH"); v != "" {
		config.Session.Path = v
	}
	if v := os.Getenv("MODAO_DB_PATH"); v != "" {
		config.Database.Path = v
	}
}
