package jobs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/internal/config"
)

// Getter fetches the body of a page.
type Getter interface {
	Get(ctx context.Context, u *url.URL) ([]byte, error)
}

// Builder builds the list of URLs requested by each traversal.
type Builder struct {
	getter Getter
}

func NewBuilder(getter Getter) *Builder {
	return &Builder{getter: getter}
}

// Build returns requests URLs for the given source.
//
// With SourceRepeat every job is target itself. With SourceSubpages target is an index
// page listing one path per line; the listed pages are requested in order, cycling until
// requests jobs were produced.
func (b *Builder) Build(ctx context.Context, source string, target *url.URL, requests int) ([]*url.URL, error) {
	switch source {
	case config.SourceRepeat:
		return Repeat(target, requests), nil
	case config.SourceSubpages:
		pages, err := b.Subpages(ctx, target)
		if err != nil {
			return nil, err
		}
		if len(pages) == 0 {
			return nil, fmt.Errorf("index %s lists no subpages", target)
		}
		zap.S().Named("jobs").Infow("subpages discovered", "index", target.String(), "count", len(pages))
		return Cycle(pages, requests), nil
	default:
		return nil, fmt.Errorf("unknown job source %q", source)
	}
}

func (b *Builder) Subpages(ctx context.Context, index *url.URL) ([]*url.URL, error) {
	return Subpages(ctx, b.getter, index)
}

// Subpages fetches index and resolves every non-empty line against it.
func Subpages(ctx context.Context, getter Getter, index *url.URL) ([]*url.URL, error) {
	body, err := getter.Get(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subpage index: %w", err)
	}
	return ParseIndex(index, body)
}

// ParseIndex resolves each non-blank line of body against base.
func ParseIndex(base *url.URL, body []byte) ([]*url.URL, error) {
	var pages []*url.URL

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ref, err := url.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("invalid subpage reference %q: %w", line, err)
		}
		pages = append(pages, base.ResolveReference(ref))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subpage index: %w", err)
	}
	return pages, nil
}

// Repeat returns n copies of u.
func Repeat(u *url.URL, n int) []*url.URL {
	return Cycle([]*url.URL{u}, n)
}

// Cycle returns n URLs taken from pages in order, starting over when exhausted.
func Cycle(pages []*url.URL, n int) []*url.URL {
	if len(pages) == 0 || n <= 0 {
		return nil
	}
	out := make([]*url.URL, n)
	for i := range out {
		out[i] = pages[i%len(pages)]
	}
	return out
}
