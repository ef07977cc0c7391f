/*
Package main provides end-to-end tests running hammer against a nail server.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, InfraManager setup, Ginkgo runner
	├── tests.go         Ginkgo test specs
	├── doc.go           This file
	├── infra/           Infrastructure management
	│   ├── infra.go     InfraManager interface + NailConfig
	│   ├── inprocess.go InProcessInfraManager (nail inside the test binary)
	│   └── external.go  ExternalInfraManager (no-op, externally managed)
	└── service/
	    └── service.go   NailSvc: URL helpers and /metrics scraping

# InfraManager

InfraManager is the central abstraction for the target lifecycle:

	type InfraManager interface {
	    StartNail() (string, error)
	    StopNail() error
	}

Two implementations:
  - InProcessInfraManager: starts nail on a random loopback port (default).
  - ExternalInfraManager: no-op; nail is started separately and reached via -nail-url.

Selected via the -infra-mode flag ("inprocess" or "external").

# Assertions

Request counts are read back from nail's /metrics endpoint, so the specs check what the
server actually served and not only what hammer reports:

	┌─────────┐  GET /hello ×N   ┌─────────┐
	│ hammer  │─────────────────▶│  nail   │
	└─────────┘                  └────┬────┘
	                                  │ /metrics
	                                  ▼
	                             ┌──────────┐
	                             │ NailSvc  │
	                             └──────────┘

# Running

	go run ./test/e2e
	go run ./test/e2e -infra-mode external -nail-url http://127.0.0.1:8080
*/
package main
