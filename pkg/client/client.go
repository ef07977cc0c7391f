package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
	"github.com/jwodder/axum-hammer/pkg/scheduler"
)

type Config struct {
	// Timeout bounds a whole request, body included. Zero means no timeout.
	Timeout            time.Duration
	UserAgent          string
	ProxyURL           string
	InsecureSkipVerify bool
}

// Client performs GET requests over its own connection pool.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(cfg Config) (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse proxy url: %w", err)
		}
		if proxy.Scheme == "" || proxy.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", cfg.ProxyURL)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
	}, nil
}

// NewFactory returns a factory building a fresh Client for every worker.
func NewFactory(cfg Config) scheduler.CallerFactory[*url.URL, time.Duration] {
	return func() (scheduler.Caller[*url.URL, time.Duration], error) {
		c, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Call sends a GET to u and reads the whole body. It returns the time elapsed from the
// start of the request until the body was consumed.
func (c *Client) Call(ctx context.Context, u *url.URL) (time.Duration, error) {
	start := time.Now()
	if err := c.do(ctx, u, io.Discard); err != nil {
		return 0, err
	}
	elapsed := time.Since(start)

	zap.S().Named("client").Debugw("request completed", "url", u.String(), "elapsed", elapsed)
	return elapsed, nil
}

// Get sends a GET to u and returns the body.
func (c *Client) Get(ctx context.Context, u *url.URL) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.do(ctx, u, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CloseIdleConnections releases the pooled connections of this client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, u *url.URL, body io.Writer) error {
	target := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return srvErrors.NewTransportError(target, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return srvErrors.NewTransportError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, resp.Body)
		return srvErrors.NewStatusError(target, resp.StatusCode, resp.Status)
	}

	if _, err := io.Copy(body, resp.Body); err != nil {
		return srvErrors.NewTransportError(target, err)
	}
	return nil
}
