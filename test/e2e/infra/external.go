package infra

// ExternalInfraManager implements InfraManager for a nail server managed externally,
// e.g. started with `go run ./cmd/nail`.
type ExternalInfraManager struct {
	url string
}

// NewExternalInfraManager creates a new ExternalInfraManager.
func NewExternalInfraManager(url string) *ExternalInfraManager {
	return &ExternalInfraManager{url: url}
}

func (e *ExternalInfraManager) StartNail() (string, error) { return e.url, nil }
func (e *ExternalInfraManager) StopNail() error            { return nil }
