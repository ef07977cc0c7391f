package service

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/pkg/client"
)

const metricsPath = "/metrics"

// NailSvc talks to a running nail server.
type NailSvc struct {
	baseURL *url.URL
	client  *client.Client
}

// NewNailService initializes a NailSvc for the server at baseURL.
func NewNailService(baseURL string) (*NailSvc, error) {
	zap.S().Info("Initializing NailService...")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nail url: %w", err)
	}
	c, err := client.NewClient(client.Config{UserAgent: "hammer-e2e"})
	if err != nil {
		return nil, err
	}
	return &NailSvc{baseURL: u, client: c}, nil
}

// URL resolves path against the server's base URL.
func (s *NailSvc) URL(path string) *url.URL {
	return s.baseURL.ResolveReference(&url.URL{Path: path})
}

// URLWithQuery is URL with a raw query string.
func (s *NailSvc) URLWithQuery(path, query string) *url.URL {
	u := s.URL(path)
	u.RawQuery = query
	return u
}

// RequestCount reads nail_http_requests_total for route and code from /metrics.
// A series that was never incremented counts as zero.
func (s *NailSvc) RequestCount(ctx context.Context, route string, code int) (float64, error) {
	body, err := s.client.Get(ctx, s.URL(metricsPath))
	if err != nil {
		return 0, err
	}

	prefix := fmt.Sprintf(`nail_http_requests_total{code="%d",route="%s"} `, code, route)
	scanner := bufio.NewScanner(strings.NewReader(string(body)))
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, prefix); ok {
			return strconv.ParseFloat(strings.TrimSpace(v), 64)
		}
	}
	return 0, scanner.Err()
}
