package services

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
)

const (
	SubpageCount   = 100
	SubpageNameLen = 16
	SubpageBodyLen = 1024

	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// SubpagePrefixes are the routes nail serves a separate subpage set under.
var SubpagePrefixes = []string{"/subpages", "/subpages-arc", "/subpages-service"}

// Subpages serves a fixed set of randomly generated pages below a path prefix.
type Subpages struct {
	prefix string
	keys   []string
	pages  map[string][]byte
	index  string
	once   sync.Once
}

// NewSubpages generates SubpageCount pages from seed. The same seed always yields the
// same pages.
func NewSubpages(prefix string, seed uint64) *Subpages {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	pages := make(map[string][]byte, SubpageCount)
	for len(pages) < SubpageCount {
		name := randomName(rng)
		if _, ok := pages[name]; ok {
			continue
		}
		pages[name] = randomBody(rng)
	}

	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return &Subpages{
		prefix: strings.Trim(prefix, "/"),
		keys:   keys,
		pages:  pages,
	}
}

// NewSubpageSets builds one set per entry of SubpagePrefixes. The set at index i is
// seeded with seed+i, so every set holds different pages.
func NewSubpageSets(seed uint64) []*Subpages {
	sets := make([]*Subpages, 0, len(SubpagePrefixes))
	for i, prefix := range SubpagePrefixes {
		sets = append(sets, NewSubpages(prefix, seed+uint64(i)))
	}
	return sets
}

// Prefix returns the route the pages are listed under, with a leading slash.
func (s *Subpages) Prefix() string {
	return "/" + s.prefix
}

// Index lists the path of every page, one per line, sorted by key.
func (s *Subpages) Index() string {
	s.once.Do(func() {
		var b strings.Builder
		for _, k := range s.keys {
			b.WriteString("/" + s.prefix + "/" + k + "\n")
		}
		s.index = b.String()
	})
	return s.index
}

func (s *Subpages) Keys() []string {
	return slices.Clone(s.keys)
}

func (s *Subpages) Get(key string) ([]byte, error) {
	body, ok := s.pages[key]
	if !ok {
		return nil, srvErrors.NewPageNotFoundError(key)
	}
	return body, nil
}

func randomName(rng *rand.Rand) string {
	b := make([]byte, SubpageNameLen)
	for i := range b {
		b[i] = alphanumeric[rng.IntN(len(alphanumeric))]
	}
	return string(b)
}

func randomBody(rng *rand.Rand) []byte {
	b := make([]byte, SubpageBodyLen)
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
	return b
}
