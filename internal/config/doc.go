// Package config defines the configuration structure for tagpoll.
//
// Configuration is organized into logical sections (Server, Database, Authentication)
// and gets its defaults from `default` struct tags applied with creasty/defaults.
// The cmd/tagpoll commands expose every field as a flag; flags can also be set
// from TAGPOLL_* environment variables or from a config file.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Database       - Driver, DSN and connect retry policy
//	├── Authentication - Token signing settings
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────┬─────────┬────────────────────────────────────────────────┐
//	│ Field    │ Default │ Description                                    │
//	├──────────┼─────────┼────────────────────────────────────────────────┤
//	│ Mode     │ "dev"   │ "prod" or "dev"                                │
//	│ HTTPPort │ 4000    │ HTTP server listen port                        │
//	└──────────┴─────────┴────────────────────────────────────────────────┘
//
// Server modes:
//   - prod: list endpoints are disabled, error details are hidden, migrations
//     are tracked and only new ones are applied
//   - dev: the schema is reset and every migration is rerun on start
//
// # Database Configuration
//
//	┌──────────────────────┬──────────┬──────────────────────────────────────────┐
//	│ Field                │ Default  │ Description                              │
//	├──────────────────────┼──────────┼──────────────────────────────────────────┤
//	│ Driver               │ "duckdb" │ "duckdb" or "postgres"                   │
//	│ DSN                  │ ""       │ DuckDB file (empty: in memory) or pg URL │
//	│ ConnectRetryInterval │ 500ms    │ Wait between refused connect attempts    │
//	│ ConnectRetryAttempts │ 40       │ Attempts before giving up                │
//	└──────────────────────┴──────────┴──────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌───────────┬──────────┬──────────────────────────────────────┐
//	│ Field     │ Default  │ Description                          │
//	├───────────┼──────────┼──────────────────────────────────────┤
//	│ JWTSecret │ "secret" │ HMAC key for HS256 tokens            │
//	│ TokenTTL  │ 168h     │ Token lifetime                       │
//	└───────────┴──────────┴──────────────────────────────────────┘
//
// # Debug Logging
//
// DebugMap() returns a map suitable for structured logging. The JWT secret and
// the DSN are replaced by "(sensitive)":
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
