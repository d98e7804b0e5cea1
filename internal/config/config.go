// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// The struct tags are read by caarlos0/env; an optional .env file is loaded
// first with godotenv, and CLI flags are applied last.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port         string        `env:"PORT" envDefault:"8001"`
	GinMode      string        `env:"GIN_MODE" envDefault:"debug"` // "debug", "release", or "test"
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`

	// CORS
	AllowedOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Webshare rotating residential proxy. Both or neither.
	ProxyUsername string `env:"WEBSHARE_PROXY_USERNAME"`
	ProxyPassword string `env:"WEBSHARE_PROXY_PASSWORD"`
	ProxyDomain   string `env:"WEBSHARE_PROXY_DOMAIN" envDefault:"p.webshare.io"`
	ProxyPort     int    `env:"WEBSHARE_PROXY_PORT" envDefault:"80"`

	// YouTube
	YouTubeBaseURL string        `env:"YOUTUBE_BASE_URL" envDefault:"https://www.youtube.com"`
	YouTubeTimeout time.Duration `env:"YOUTUBE_HTTP_TIMEOUT" envDefault:"30s"`

	// Upper bound for one transcript or listing call, all provider requests
	// included. Must stay below HTTP_WRITE_TIMEOUT so the failure body can
	// still be written.
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"50s"`

	// Rate limiting, per client IP. 0 disables it.
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	EnvFile  string
	Port     string
	LogLevel string
	GinMode  string
}

// Load reads configuration from .env file, environment variables, and CLI overrides.
// Priority: CLI flags > environment variables > .env file > struct defaults.
func Load(overrides Overrides) (*Config, error) {
	// Load .env file (silent if missing)
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Apply CLI overrides (non-empty values win)
	if overrides.Port != "" {
		cfg.Port = overrides.Port
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if overrides.GinMode != "" {
		cfg.GinMode = overrides.GinMode
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if (c.ProxyUsername != "") != (c.ProxyPassword != "") {
		return errors.New("WEBSHARE_PROXY_USERNAME and WEBSHARE_PROXY_PASSWORD must be set together")
	}
	if c.ProxyPort <= 0 || c.ProxyPort > 65535 {
		return errors.New("WEBSHARE_PROXY_PORT must be between 1 and 65535")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if u, err := url.Parse(c.YouTubeBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("YOUTUBE_BASE_URL must be an absolute URL, got %q", c.YouTubeBaseURL)
	}
	if c.GatewayTimeout <= 0 {
		return errors.New("GATEWAY_TIMEOUT must be positive")
	}
	if c.WriteTimeout > 0 && c.GatewayTimeout >= c.WriteTimeout {
		return fmt.Errorf("GATEWAY_TIMEOUT (%s) must be shorter than HTTP_WRITE_TIMEOUT (%s)", c.GatewayTimeout, c.WriteTimeout)
	}
	return nil
}

// ProxyConfigured reports whether startup proxy credentials were given.
func (c *Config) ProxyConfigured() bool {
	return c.ProxyUsername != "" && c.ProxyPassword != ""
}

// AllowsAllOrigins reports whether CORS is open to every origin.
func (c *Config) AllowsAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}
