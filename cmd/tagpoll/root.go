package main

import (
	"errors"
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tagpoll/tagpoll/internal/config"
)

const (
	envPrefix      = "TAGPOLL"
	configFileFlag = "config"
)

func newRootCommand(cfg *config.Configuration) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "tagpoll",
		Short:         "Polling and survey API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			syncConfigFilePreRunE(&configFile),
			setupPreRunE(cfg),
		),
	}

	rootCmd.PersistentFlags().StringVar(&configFile, configFileFlag, "", "Path to a YAML config file keyed by flag name")
	registerFlags(rootCmd.PersistentFlags(), cfg)

	rootCmd.AddCommand(newServeCommand(cfg))
	rootCmd.AddCommand(newMigrateCommand(cfg))

	return rootCmd
}

func registerFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Server.Mode, "mode", cfg.Server.Mode, "Server mode: dev or prod")
	fs.IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "HTTP listen port")

	fs.StringVar(&cfg.Database.Driver, "db-driver", cfg.Database.Driver, "Database driver: duckdb or postgres")
	fs.StringVar(&cfg.Database.DSN, "db-dsn", cfg.Database.DSN, "DuckDB file (empty for in memory) or PostgreSQL URL")
	fs.DurationVar(&cfg.Database.ConnectRetryInterval, "db-connect-retry-interval", cfg.Database.ConnectRetryInterval, "Wait between refused connection attempts")
	fs.IntVar(&cfg.Database.ConnectRetryAttempts, "db-connect-retry-attempts", cfg.Database.ConnectRetryAttempts, "Connection attempts before giving up")

	fs.StringVar(&cfg.Authentication.JWTSecret, "jwt-secret", cfg.Authentication.JWTSecret, "HMAC secret for session tokens")
	fs.DurationVar(&cfg.Authentication.TokenTTL, "token-ttl", cfg.Authentication.TokenTTL, "Session token lifetime")

	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: console or json")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
}

// syncConfigFilePreRunE fills flags that were set neither on the command
// line nor in the environment from the config file.
func syncConfigFilePreRunE(path *string) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, _ []string) error {
		if *path == "" {
			return nil
		}

		v := viper.New()
		v.SetConfigFile(*path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", *path, err)
		}

		var errs []error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Name == configFileFlag || f.Changed || !v.IsSet(f.Name) {
				return
			}
			if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
				errs = append(errs, fmt.Errorf("invalid value for %q in %s: %w", f.Name, *path, err))
			}
		})
		return errors.Join(errs...)
	}
}

func setupPreRunE(cfg *config.Configuration) cobrautil.CobraRunFunc {
	return func(_ *cobra.Command, _ []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)

		zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
		return nil
	}
}

func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zapCfg zap.Config
	switch format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q: expected json or console", format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
