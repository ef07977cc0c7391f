package infra

// InfraManager abstracts the lifecycle of the nail target for e2e tests.
// In-process: nail runs inside the test binary on a random port.
// External: no-op, nail is started separately and reached by URL.
type InfraManager interface {
	// StartNail returns the base URL of a running nail server.
	StartNail() (string, error)
	StopNail() error
}

// NailConfig holds configuration for starting a nail instance.
type NailConfig struct {
	Seed  uint64
	Trace bool
}
