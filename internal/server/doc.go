// Package server provides the HTTP server for tagpoll.
//
// The server uses the Gin web framework. The API lives under /api; /health and
// /metrics sit outside it and never touch the database.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  RequestID (X-Request-Id, generated when absent)        │  │
//	│  │  Logger (request/response logging)                      │  │
//	│  │  Recovery (panic recovery with zap logging)             │  │
//	│  │  Metrics (tagpoll_http_requests_total)                  │  │
//	│  │  CORS (any origin, 204 on preflight)                    │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  /health   /metrics                                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api)                           │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Database (one connection per request, closed after)    │  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (Mode = "dev"): Gin runs in debug mode.
//
// Production Mode (Mode = "prod"): Gin runs in release mode. Mode specific API
// behavior (disabled listings, hidden error details) belongs to the handlers.
//
// # Unknown Routes
//
//	/api/...     → 400 {"error": "Route not found"}
//	anything else→ 404 {"error": "Not found"}
//
// # Server Lifecycle
//
//	srv := server.NewServer(cfg, lc, registry, func(router *gin.RouterGroup) {
//	    registerErr = handler.Register(router)
//	})
//
//	// Blocks until the listener fails or ctx is cancelled, then shuts down
//	// gracefully.
//	err := srv.Start(ctx)
//
// Handler exposes the engine for httptest.
//
// # Middleware
//
// Logger Middleware (middlewares.Logger):
//   - Logs request start: method, path, query, IP, user-agent, request id
//   - Logs request end: all above + status code, latency
//   - Errors logged separately if present
//   - Uses zap structured logging with "http" logger name
//
// Recovery Middleware (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
//
// Database Middleware (middlewares.Database):
//   - Scopes a connection slot to the request context
//   - The connection is dialed lazily by the first store access
//   - Closes it after the handler chain returns
package server
