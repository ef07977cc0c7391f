package infra

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/handlers"
	"github.com/jwodder/axum-hammer/internal/server"
	"github.com/jwodder/axum-hammer/internal/services"
)

// InProcessInfraManager runs nail inside the test process.
type InProcessInfraManager struct {
	cfg  NailConfig
	srv  *server.Server
	done chan error
}

// NewInProcessInfraManager creates a new InProcessInfraManager.
func NewInProcessInfraManager(cfg NailConfig) *InProcessInfraManager {
	return &InProcessInfraManager{cfg: cfg}
}

func (m *InProcessInfraManager) StartNail() (string, error) {
	cfg := config.NewConfigurationWithDefaults()
	cfg.Nail.Mode = gin.TestMode
	cfg.Nail.Trace = m.cfg.Trace

	h := handlers.New(services.NewSleeper(), services.NewSubpageSets(m.cfg.Seed)...)
	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		handlers.RegisterHandlers(router, h)
	})
	if err != nil {
		return "", err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to bind listener: %w", err)
	}

	m.srv = srv
	m.done = make(chan error, 1)
	go func() {
		m.done <- srv.Serve(context.Background(), ln)
	}()

	url := "http://" + ln.Addr().String()
	zap.S().Infow("nail started", "url", url)
	return url, nil
}

func (m *InProcessInfraManager) StopNail() error {
	if m.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.srv.Stop(ctx); err != nil {
		return err
	}
	if err := <-m.done; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	m.srv = nil
	return nil
}
