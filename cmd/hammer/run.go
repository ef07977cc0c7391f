package main

import (
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/logger"
	"github.com/jwodder/axum-hammer/internal/models"
	"github.com/jwodder/axum-hammer/internal/report"
	"github.com/jwodder/axum-hammer/internal/services"
	"github.com/jwodder/axum-hammer/pkg/client"
)

type runCommand struct {
	cfg        *config.Configuration
	loader     *config.Loader
	configFile string
}

func NewRunCommand() *cobra.Command {
	r := &runCommand{
		cfg:    config.NewConfigurationWithDefaults(),
		loader: config.NewLoader(),
	}

	cmd := &cobra.Command{
		Use:   "run URL",
		Short: "Request URL repeatedly, once per worker count, and report the timings",
		Args:  cobra.ExactArgs(1),
		PreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE("HAMMER"),
			r.load,
		),
		RunE: r.run,
	}
	r.registerFlags(cmd)
	return cmd
}

func (r *runCommand) registerFlags(cmd *cobra.Command) {
	h, c := r.cfg.Hammer, r.cfg.Client
	flags := cmd.Flags()

	flags.StringVarP(&r.configFile, "config", "c", "", "configuration file (yaml, json or toml)")
	flags.IntP("requests", "r", h.Requests, "number of requests per traversal")
	flags.IntSliceP("workers", "w", h.Workers, "worker counts, one traversal each")
	flags.Int("buffer", h.BufferSize, "capacity of the result channel")
	flags.String("source", h.Source, "job source: repeat or subpages")
	flags.StringP("format", "f", h.Format, "report format: text, json, csv or xlsx")
	flags.StringP("output", "o", h.Output, "report file (default stdout)")
	flags.Duration("wait-ready", h.WaitReady, "poll the target until it answers, for at most this long")
	flags.Duration("timeout", c.Timeout, "per-request timeout (0 disables)")
	flags.String("user-agent", c.UserAgent, "User-Agent header")
	flags.String("proxy-url", c.ProxyURL, "HTTP proxy")
	flags.Bool("insecure", c.Insecure, "skip TLS certificate verification")
	flags.String("log-format", r.cfg.LogFormat, "log format: console or json")
	flags.String("log-level", r.cfg.LogLevel, "log level")

	bindings := map[string]string{
		"hammer.requests":    "requests",
		"hammer.workers":     "workers",
		"hammer.buffer-size": "buffer",
		"hammer.source":      "source",
		"hammer.format":      "format",
		"hammer.output":      "output",
		"hammer.wait-ready":  "wait-ready",
		"client.timeout":     "timeout",
		"client.user-agent":  "user-agent",
		"client.proxy-url":   "proxy-url",
		"client.insecure":    "insecure",
		"log-format":         "log-format",
		"log-level":          "log-level",
	}
	for key, name := range bindings {
		if err := r.loader.BindFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (r *runCommand) load(_ *cobra.Command, args []string) error {
	if err := r.loader.Load(r.configFile, r.cfg); err != nil {
		return err
	}
	r.cfg.Hammer.URL = args[0]
	return r.cfg.Validate()
}

func (r *runCommand) run(cmd *cobra.Command, _ []string) error {
	flush, err := logger.Init(r.cfg.LogFormat, r.cfg.LogLevel)
	if err != nil {
		return err
	}
	defer flush()

	zap.S().Debugw("configuration loaded", "config", r.cfg.DebugMap())

	target, err := url.Parse(r.cfg.Hammer.URL)
	if err != nil {
		return err
	}

	clientCfg := client.Config{
		Timeout:            r.cfg.Client.Timeout,
		UserAgent:          r.cfg.Client.UserAgent,
		ProxyURL:           r.cfg.Client.ProxyURL,
		InsecureSkipVerify: r.cfg.Client.Insecure,
	}
	probe, err := client.NewClient(clientCfg)
	if err != nil {
		return err
	}
	defer probe.CloseIdleConnections()

	svc := services.NewHammerService(client.NewFactory(clientCfg), probe)

	// text to stdout is printed as each traversal completes
	streaming := r.cfg.Hammer.Format == config.FormatText && r.cfg.Hammer.Output == ""
	if streaming {
		svc.OnTraversal = func(t models.Traversal) {
			_ = report.WriteTraversalLine(cmd.OutOrStdout(), t)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, runErr := svc.Run(ctx, services.RunSpec{
		Target:     target,
		Source:     r.cfg.Hammer.Source,
		Requests:   r.cfg.Hammer.Requests,
		Workers:    r.cfg.Hammer.Workers,
		BufferSize: r.cfg.Hammer.BufferSize,
		WaitReady:  r.cfg.Hammer.WaitReady,
	})

	if !streaming && len(run.Traversals) > 0 {
		if err := report.Write(r.cfg.Hammer.Format, r.cfg.Hammer.Output, cmd.OutOrStdout(), run); err != nil {
			zap.S().Errorw("failed to write report", "error", err)
			if runErr == nil {
				return err
			}
		}
	}
	return runErr
}
