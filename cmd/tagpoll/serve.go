package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tagpoll/tagpoll/internal/auth"
	"github.com/tagpoll/tagpoll/internal/config"
	"github.com/tagpoll/tagpoll/internal/handlers"
	"github.com/tagpoll/tagpoll/internal/server"
	"github.com/tagpoll/tagpoll/internal/server/middlewares"
	"github.com/tagpoll/tagpoll/internal/services"
	"github.com/tagpoll/tagpoll/internal/store"
	"github.com/tagpoll/tagpoll/internal/store/migrations"
)

func newServeCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("serve")
	defer func() { _ = zap.L().Sync() }()

	db, lc, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := migrations.Run(ctx, db, migrationMode(cfg))
	if err != nil {
		return err
	}
	log.Infow("database migrated", "mode", result.Mode, "reset", result.Reset, "applied", result.Applied, "skipped", result.Skipped)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	registry.MustRegister(store.Collectors()...)
	registry.MustRegister(middlewares.Collectors()...)

	a := auth.NewAuthenticator(cfg.Authentication.JWTSecret, cfg.Authentication.TokenTTL)
	h := handlers.New(handlers.Services{
		Profile:  services.NewProfileService(lc, a),
		Question: services.NewQuestionService(lc),
		Option:   services.NewOptionService(lc),
		Vote:     services.NewVoteService(lc),
		Tag:      services.NewTagService(lc),
	}, a, cfg.IsProduction())

	var registerErr error
	srv := server.NewServer(cfg, lc, registry, func(router *gin.RouterGroup) {
		registerErr = h.Register(router)
	})
	if registerErr != nil {
		return fmt.Errorf("failed to register handlers: %w", registerErr)
	}

	log.Infow("starting server", "port", cfg.Server.HTTPPort, "mode", cfg.Server.Mode)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// openDatabase opens the handle and waits until the database accepts a
// connection, using the same retry policy as request connections.
func openDatabase(ctx context.Context, cfg *config.Configuration) (*sql.DB, *store.Lifecycle, error) {
	db, err := store.NewDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}

	lc := store.NewLifecycle(store.NewSQLDialer(db),
		store.WithRetryInterval(cfg.Database.ConnectRetryInterval),
		store.WithRetryAttempts(cfg.Database.ConnectRetryAttempts),
	)

	exec, err := lc.Connect(ctx)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := exec.Close(); err != nil {
		zap.S().Named("serve").Warnw("failed to close probe connection", "error", err)
	}

	return db, lc, nil
}

func migrationMode(cfg *config.Configuration) migrations.Mode {
	if cfg.IsProduction() {
		return migrations.ModeProduction
	}
	return migrations.ModeDevelopment
}
