package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	DefaultBaseURL = "https://h7m.g4educacao.com/v1/data"

	// MinTimeout is the smallest accepted ACCOUNTS_API_TIMEOUT.
	MinTimeout = time.Second

	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	API    APIConfig
	Server ServerConfig
	Log    LogConfig
}

type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type ServerConfig struct {
	Transport string
	Addr      string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the configuration from the environment, after loading a .env
// file if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := getEnvAsDuration("ACCOUNTS_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("ACCOUNTS_API_BASE_URL", DefaultBaseURL), "/"),
			Token:   getEnv("ACCOUNTS_API_TOKEN", ""),
			Timeout: timeout,
		},
		Server: ServerConfig{
			Transport: getEnv("MCP_TRANSPORT", TransportStdio),
			Addr:      getEnv("MCP_ADDR", ":8080"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants Load enforces. It is exported so values
// overridden after Load (command-line flags) can be checked again.
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return fmt.Errorf("ACCOUNTS_API_TOKEN is required")
	}
	if err := validateBaseURL(c.API.BaseURL); err != nil {
		return err
	}
	if c.API.Timeout < MinTimeout {
		return fmt.Errorf("ACCOUNTS_API_TIMEOUT must be at least %s (got %s); include a unit, e.g. 30s", MinTimeout, c.API.Timeout)
	}
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("MCP_TRANSPORT must be %q or %q (got %q)", TransportStdio, TransportHTTP, c.Server.Transport)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\" (got %q)", c.Log.Format)
	}
	return nil
}

// validateBaseURL only accepts HTTPS, or plain HTTP to a loopback host: the
// bearer token must not travel in clear text.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("ACCOUNTS_API_BASE_URL is invalid: %w", err)
	}
	switch {
	case u.Scheme == "https" && u.Host != "":
		return nil
	case u.Scheme == "http" && isLoopback(u.Hostname()):
		return nil
	default:
		return fmt.Errorf("ACCOUNTS_API_BASE_URL must use HTTPS or localhost; got: %s", raw)
	}
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// SlogLevel returns the configured level. Validate has already rejected unknown names.
func (c LogConfig) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	return level, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// getEnvAsDuration parses key as a duration. A value without a unit is read as
// nanoseconds, so Validate rejects it through MinTimeout.
func getEnvAsDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal, nil
	}
	duration, err := cast.ToDurationE(value)
	if err != nil {
		return 0, fmt.Errorf("%s is invalid: %w", key, err)
	}
	return duration, nil
}
