package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrMissingDriveCredentials is returned by Validate when the recipe store is not configured.
var ErrMissingDriveCredentials = errors.New("DRIVE_API_KEY and DRIVE_ROOT_FOLDER_ID must be set")

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Drive      DriveConfig
	Timers     TimerConfig
	HTTPClient ClientConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port      string `envconfig:"PORT" default:"8000"`
	Host      string `envconfig:"HOST" default:"0.0.0.0"`
	SkillPath string `envconfig:"SKILL_PATH" default:"/skill"`
}

// DriveConfig holds the recipe collection location.
type DriveConfig struct {
	APIKey       string `envconfig:"DRIVE_API_KEY"`
	RootFolderID string `envconfig:"DRIVE_ROOT_FOLDER_ID"`
	BaseURL      string `envconfig:"DRIVE_BASE_URL" default:"https://www.googleapis.com"`
}

// DefaultTimerHosts are the regional alerts API hosts of the voice platform.
var DefaultTimerHosts = []string{"api.amazonalexa.com", "api.eu.amazonalexa.com", "api.fe.amazonalexa.com"}

// TimerConfig holds timer defaults. AllowedHosts limits which apiEndpoint
// hosts receive the access token; empty allows any host.
type TimerConfig struct {
	Locale       string   `envconfig:"TIMER_LOCALE" default:"en-US"`
	AllowedHosts []string `envconfig:"TIMER_ALLOWED_HOSTS" default:"api.amazonalexa.com,api.eu.amazonalexa.com,api.fe.amazonalexa.com"`
}

// ClientConfig holds outbound HTTP client configuration.
type ClientConfig struct {
	Timeout         time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	RequestsPerSec  float64       `envconfig:"HTTP_RPS" default:"0"`
	BreakerFailures uint32        `envconfig:"HTTP_BREAKER_FAILURES" default:"10"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds inbound rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
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

// Validate checks the settings a turn cannot run without.
func (c *Config) Validate() error {
	if c.Drive.APIKey == "" || c.Drive.RootFolderID == "" {
		return ErrMissingDriveCredentials
	}
	if c.Server.SkillPath == "" || c.Server.SkillPath[0] != '/' {
		return fmt.Errorf("SKILL_PATH must start with '/': %q", c.Server.SkillPath)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8000",
			Host:      "0.0.0.0",
			SkillPath: "/skill",
		},
		Drive: DriveConfig{
			BaseURL: "https://www.googleapis.com",
		},
		Timers: TimerConfig{
			Locale:       "en-US",
			AllowedHosts: append([]string(nil), DefaultTimerHosts...),
		},
		HTTPClient: ClientConfig{
			Timeout:         10 * time.Second,
			BreakerFailures: 10,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}
