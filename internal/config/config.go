package config

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
)

const (
	ModeDevelopment = "dev"
	ModeProduction  = "prod"

	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

type Configuration struct {
	Server         Server
	Database       Database
	Authentication Authentication
	LogFormat      string `default:"console"`
	LogLevel       string `default:"debug"`
}

type Server struct {
	Mode     string `default:"dev"`
	HTTPPort int    `default:"4000"`
}

type Database struct {
	Driver               string        `default:"duckdb"`
	DSN                  string        `default:""`
	ConnectRetryInterval time.Duration `default:"500ms"`
	ConnectRetryAttempts int           `default:"40"`
}

type Authentication struct {
	JWTSecret string        `default:"secret"`
	TokenTTL  time.Duration `default:"168h"`
}

// NewConfigurationWithDefaults returns a configuration populated from the
// default tags.
func NewConfigurationWithDefaults() (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply configuration defaults: %w", err)
	}
	return cfg, nil
}

func (c *Configuration) IsProduction() bool {
	return c.Server.Mode == ModeProduction
}

func (c *Configuration) Validate() error {
	switch c.Server.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("invalid server mode %q: expected %q or %q", c.Server.Mode, ModeDevelopment, ModeProduction)
	}
	switch c.Database.Driver {
	case DriverDuckDB, DriverPostgres:
	default:
		return fmt.Errorf("invalid database driver %q: expected %q or %q", c.Database.Driver, DriverDuckDB, DriverPostgres)
	}
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required for the %s driver", DriverPostgres)
	}
	if c.Database.ConnectRetryAttempts < 1 {
		return fmt.Errorf("connect retry attempts must be at least 1, got %d", c.Database.ConnectRetryAttempts)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	return nil
}

// DebugMap returns the configuration for startup logging. Secrets are redacted.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"server": map[string]any{
			"mode":      c.Server.Mode,
			"http-port": c.Server.HTTPPort,
		},
		"database": map[string]any{
			"driver":                 c.Database.Driver,
			"dsn":                    redact(c.Database.DSN),
			"connect-retry-interval": c.Database.ConnectRetryInterval.String(),
			"connect-retry-attempts": c.Database.ConnectRetryAttempts,
		},
		"auth": map[string]any{
			"jwt-secret": "(sensitive)",
			"token-ttl":  c.Authentication.TokenTTL.String(),
		},
		"log-format": c.LogFormat,
		"log-level":  c.LogLevel,
	}
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "(sensitive)"
}
