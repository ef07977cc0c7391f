package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/test/e2e/infra"
)

type configuration struct {
	InfraMode string // "inprocess" or "external"
	NailURL   string
	Seed      uint64
	Trace     bool
}

var (
	cfg          configuration
	infraManager infra.InfraManager
)

func (c configuration) Validate() error {
	switch c.InfraMode {
	case "inprocess":
	case "external":
		u, err := url.Parse(c.NailURL)
		if err != nil {
			return fmt.Errorf("failed to parse nail url: %v", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("nail url %q must be absolute", c.NailURL)
		}
	default:
		return fmt.Errorf("invalid infra-mode %q: must be 'inprocess' or 'external'", c.InfraMode)
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.InfraMode, "infra-mode", "inprocess", "Infrastructure mode: 'inprocess' (nail in the test binary) or 'external'")
	flag.StringVar(&cfg.NailURL, "nail-url", "http://127.0.0.1:8080", "Base URL of an external nail server")
	flag.Uint64Var(&cfg.Seed, "seed", 1, "Subpage seed for the in-process nail server")
	flag.BoolVar(&cfg.Trace, "trace", false, "Log every request served by the in-process nail server")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	switch cfg.InfraMode {
	case "inprocess":
		infraManager = infra.NewInProcessInfraManager(infra.NailConfig{Seed: cfg.Seed, Trace: cfg.Trace})
	case "external":
		infraManager = infra.NewExternalInfraManager(cfg.NailURL)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
