package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	v1 "github.com/tagpoll/tagpoll/api/v1"
	"github.com/tagpoll/tagpoll/internal/config"
	"github.com/tagpoll/tagpoll/internal/server/middlewares"
	"github.com/tagpoll/tagpoll/internal/store"
)

const (
	apiPrefix       = "/api"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

// NewServer builds the gin engine. registerHandlerFn receives the /api
// group, which already carries the per-request database scope.
func NewServer(
	cfg *config.Configuration,
	lc *store.Lifecycle,
	gatherer prometheus.Gatherer,
	registerHandlerFn func(router *gin.RouterGroup),
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(
		middlewares.RequestID(),
		middlewares.Logger(),
		ginzap.RecoveryWithZap(zap.L(), true),
		middlewares.Metrics(),
		middlewares.CORS(),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, v1.Health{Status: "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := engine.Group(apiPrefix, middlewares.Database(lc))
	registerHandlerFn(api)

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, apiPrefix+"/") || c.Request.URL.Path == apiPrefix {
			c.JSON(http.StatusBadRequest, v1.Error{Error: "Route not found"})
			return
		}
		c.JSON(http.StatusNotFound, v1.Error{Error: "Not found"})
	})

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the routing engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until the server is stopped or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		zap.S().Named("server").Infow("listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	}
}

// Stop waits for in-flight requests and closes the listener.
func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("server").Info("shutting down")
	return s.srv.Shutdown(ctx)
}
