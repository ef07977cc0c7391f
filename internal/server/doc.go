// Package server provides the HTTP server of the nail test target.
//
// The server uses the Gin web framework. It owns middleware, the /metrics endpoint and
// the listener lifecycle; routes are registered by the caller.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	│                    <ip-addr>:<port>, plain HTTP               │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (ginzap.Ginzap, only with Trace)                │  │
//	│  │  Recovery (ginzap.RecoveryWithZap)                      │  │
//	│  │  Metrics (request count, duration, in-flight)           │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/)                              │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  /metrics (promhttp)                                    │  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Lifecycle
//
// Creation:
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    handlers.RegisterHandlers(router, handler)
//	})
//
// Starting:
//
//	// Blocks until error or shutdown
//	err := srv.Start(ctx)
//
// Stopping:
//
//	srv.Stop(ctx)
//
// Performs graceful shutdown, waiting for in-flight requests to complete. Start then
// returns http.ErrServerClosed.
//
// # Middleware
//
// Logger Middleware (ginzap.Ginzap):
//   - Enabled by Nail.Trace
//   - Logs method, path, query, IP, user-agent, status and latency
//   - Uses zap structured logging with the "http" logger name
//
// Recovery Middleware (ginzap.RecoveryWithZap):
//   - Recovers from panics in handlers
//   - Logs panic details with stack trace
//   - Returns 500 Internal Server Error
//
// Metrics Middleware:
//   - nail_http_requests_total{route,code}
//   - nail_http_request_duration_seconds{route}
//   - nail_http_requests_in_flight
//
// # Usage Example
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error {
//	    if err := srv.Start(ctx); !errors.Is(err, http.ErrServerClosed) {
//	        return err
//	    }
//	    return nil
//	})
//	g.Go(func() error {
//	    <-ctx.Done()
//	    return srv.Stop(context.Background())
//	})
//	return g.Wait()
package server
