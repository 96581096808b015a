// Package config loads service configuration: defaults, then an optional
// yaml file, then environment variables (env always wins). A .env file is
// honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	defaultServiceName     = "curator"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8090
	defaultTranscriptURL   = "https://www.youtube.com"
	defaultYouTubeRPS      = 5
	defaultLibraryDBPath   = "curator.db"
	defaultOverfetch       = 2
	defaultMaxSearchResult = 25
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)

// Config holds all configuration for the curator service.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	YouTube YouTubeConfig `yaml:"youtube"`
	Library LibraryConfig `yaml:"library"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `yaml:"port"`
	Debug   bool   `yaml:"debug"`
}

// YouTubeConfig holds the external platform credential and tunables.
type YouTubeConfig struct {
	APIKey            string `yaml:"api_key"`
	TranscriptBaseURL string `yaml:"transcript_base_url"`
	RequestsPerSecond int    `yaml:"requests_per_second"`
}

// LibraryConfig holds library persistence settings.
type LibraryConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SearchConfig holds search-and-filter tunables.
type SearchConfig struct {
	// OverfetchMultiplier is how many candidates are requested per desired
	// result to compensate for post-filter loss.
	OverfetchMultiplier int `yaml:"overfetch_multiplier"`
	// MaxResults caps the per-request desired count.
	MaxResults int `yaml:"max_results"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds the configuration. path may be empty (no yaml file).
func Load(path string) (*Config, error) {
	// .env is optional; missing file is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.YouTube.TranscriptBaseURL == "" {
		c.YouTube.TranscriptBaseURL = defaultTranscriptURL
	}
	if c.YouTube.RequestsPerSecond == 0 {
		c.YouTube.RequestsPerSecond = defaultYouTubeRPS
	}
	if c.Library.DatabasePath == "" {
		c.Library.DatabasePath = defaultLibraryDBPath
	}
	if c.Search.OverfetchMultiplier < 1 {
		c.Search.OverfetchMultiplier = defaultOverfetch
	}
	if c.Search.MaxResults == 0 {
		c.Search.MaxResults = defaultMaxSearchResult
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) applyEnv() {
	envString("YOUTUBE_API_KEY", &c.YouTube.APIKey)
	envString("YOUTUBE_TRANSCRIPT_URL", &c.YouTube.TranscriptBaseURL)
	envInt("YOUTUBE_RPS", &c.YouTube.RequestsPerSecond)
	envInt("CURATOR_PORT", &c.Service.Port)
	envBool("APP_DEBUG", &c.Service.Debug)
	envString("LIBRARY_DB_PATH", &c.Library.DatabasePath)
	envInt("SEARCH_OVERFETCH", &c.Search.OverfetchMultiplier)
	envString("LOG_LEVEL", &c.Logging.Level)
	envString("LOG_FORMAT", &c.Logging.Format)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
