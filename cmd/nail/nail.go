package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/handlers"
	"github.com/jwodder/axum-hammer/internal/logger"
	"github.com/jwodder/axum-hammer/internal/server"
	"github.com/jwodder/axum-hammer/internal/services"
)

const shutdownTimeout = 10 * time.Second

type nailCommand struct {
	cfg        *config.Configuration
	loader     *config.Loader
	configFile string
}

func NewNailCommand() *cobra.Command {
	n := &nailCommand{
		cfg:    config.NewConfigurationWithDefaults(),
		loader: config.NewLoader(),
	}

	cmd := &cobra.Command{
		Use:           "nail",
		Short:         "Serve test endpoints for hammer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE("NAIL"),
			n.load,
		),
		RunE: n.run,
	}
	n.registerFlags(cmd)
	return cmd
}

func (n *nailCommand) registerFlags(cmd *cobra.Command) {
	nc := n.cfg.Nail
	flags := cmd.Flags()

	flags.StringVarP(&n.configFile, "config", "c", "", "configuration file (yaml, json or toml)")
	flags.String("ip-addr", nc.IPAddr, "IP address to listen on")
	flags.IntP("port", "p", nc.Port, "port to listen on")
	flags.String("mode", nc.Mode, "gin mode: release or debug")
	flags.BoolP("trace", "T", nc.Trace, "log every request")
	flags.Uint64("seed", nc.Seed, "subpage generation seed (0 picks one at random)")
	flags.String("log-format", n.cfg.LogFormat, "log format: console or json")
	flags.String("log-level", n.cfg.LogLevel, "log level")

	bindings := map[string]string{
		"nail.ip-addr": "ip-addr",
		"nail.port":    "port",
		"nail.mode":    "mode",
		"nail.trace":   "trace",
		"nail.seed":    "seed",
		"log-format":   "log-format",
		"log-level":    "log-level",
	}
	for key, name := range bindings {
		if err := n.loader.BindFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (n *nailCommand) load(_ *cobra.Command, _ []string) error {
	return n.loader.Load(n.configFile, n.cfg)
}

func (n *nailCommand) run(cmd *cobra.Command, _ []string) error {
	flush, err := logger.Init(n.cfg.LogFormat, n.cfg.LogLevel)
	if err != nil {
		return err
	}
	defer flush()

	zap.S().Debugw("configuration loaded", "config", n.cfg.DebugMap())

	seed := n.cfg.Nail.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	zap.S().Named("nail").Infow("generating subpages", "seed", seed, "sets", len(services.SubpagePrefixes), "count", services.SubpageCount)

	h := handlers.New(services.NewSleeper(), services.NewSubpageSets(seed)...)
	srv, err := server.NewServer(n.cfg, func(router *gin.RouterGroup) {
		handlers.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// in-flight requests outlive the signal until Stop gives up on them
		if err := srv.Start(context.WithoutCancel(gctx)); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	return g.Wait()
}
