package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/metrics"
)

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

// NewServer builds the nail router. registerHandlerFn receives the root router group;
// /metrics is mounted before it is called.
func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	switch cfg.Nail.Mode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.Nail.Mode)
	default:
		return nil, fmt.Errorf("invalid server mode %q", cfg.Nail.Mode)
	}

	engine := gin.New()
	if cfg.Nail.Trace {
		engine.Use(ginzap.Ginzap(zap.L().Named("http"), time.RFC3339, true))
	}
	engine.Use(ginzap.RecoveryWithZap(zap.L().Named("http"), true), instrument)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerHandlerFn(engine.Group("/"))

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Nail.IPAddr, strconv.Itoa(cfg.Nail.Port)),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on the configured address and blocks until the server stops. It returns
// http.ErrServerClosed after Stop.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind listener: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	zap.S().Named("server").Infow("nail listening", "addr", ln.Addr().String())
	return s.srv.Serve(ln)
}

// Stop shuts the server down gracefully, waiting for in-flight requests until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	zap.S().Named("server").Info("shutting down")
	return s.srv.Shutdown(ctx)
}

func instrument(c *gin.Context) {
	start := time.Now()
	metrics.InFlightRequests.Inc()
	defer metrics.InFlightRequests.Dec()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}
