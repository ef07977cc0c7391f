package config

import (
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
)

const (
	SourceRepeat   = "repeat"
	SourceSubpages = "subpages"

	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var (
	sources = []string{SourceRepeat, SourceSubpages}
	formats = []string{FormatText, FormatJSON, FormatCSV, FormatXLSX}
)

type Configuration struct {
	Hammer    Hammer `mapstructure:"hammer"`
	Client    Client `mapstructure:"client"`
	Nail      Nail   `mapstructure:"nail"`
	LogFormat string `mapstructure:"log-format" default:"console"`
	LogLevel  string `mapstructure:"log-level" default:"info"`
}

type Hammer struct {
	URL        string        `mapstructure:"url"`
	Requests   int           `mapstructure:"requests" default:"100"`
	Workers    []int         `mapstructure:"workers" default:"[1,2,4,8]"`
	BufferSize int           `mapstructure:"buffer-size" default:"32"`
	Source     string        `mapstructure:"source" default:"repeat"`
	Format     string        `mapstructure:"format" default:"text"`
	Output     string        `mapstructure:"output"`
	WaitReady  time.Duration `mapstructure:"wait-ready" default:"0s"`
}

type Client struct {
	Timeout   time.Duration `mapstructure:"timeout" default:"0s"`
	UserAgent string        `mapstructure:"user-agent" default:"hammer/1.0"`
	ProxyURL  string        `mapstructure:"proxy-url"`
	Insecure  bool          `mapstructure:"insecure"`
}

type Nail struct {
	IPAddr string `mapstructure:"ip-addr" default:"127.0.0.1"`
	Port   int    `mapstructure:"port" default:"8080"`
	Mode   string `mapstructure:"mode" default:"release"`
	Trace  bool   `mapstructure:"trace"`
	// Seed drives subpage generation. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed"`
}

// NewConfigurationWithDefaults returns a configuration with every default applied.
func NewConfigurationWithDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		// defaults are static struct tags, a failure here is a programming error
		panic(fmt.Sprintf("invalid configuration defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML, JSON or TOML file into cfg. Keys absent from the file keep the
// values already in cfg.
func Load(path string, cfg *Configuration) error {
	return NewLoader().Load(path, cfg)
}

// Loader layers bound command-line flags over an optional configuration file.
// Precedence, highest first: changed flags, the file, flag defaults.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// BindFlag makes flag the source of the dotted configuration key.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag bound to %q", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load decodes the file at path (if any) and the bound flags into cfg.
func (l *Loader) Load(path string, cfg *Configuration) error {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
	}
	// lists replace the defaults instead of being merged element-wise
	if l.v.IsSet("hammer.workers") {
		cfg.Hammer.Workers = nil
	}
	if err := l.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration %q: %w", path, err)
	}
	return nil
}

// Validate checks the settings used by the hammer command.
func (c *Configuration) Validate() error {
	u, err := url.Parse(c.Hammer.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return srvErrors.NewInvalidConfigurationError("url", fmt.Sprintf("must be an absolute http(s) URL, got %q", c.Hammer.URL))
	}
	if c.Hammer.Requests < 1 {
		return srvErrors.NewInvalidConfigurationError("requests", "must be at least 1")
	}
	if len(c.Hammer.Workers) == 0 {
		return srvErrors.NewInvalidConfigurationError("workers", "must list at least one worker count")
	}
	for _, w := range c.Hammer.Workers {
		if w < 1 {
			return srvErrors.NewInvalidConfigurationError("workers", fmt.Sprintf("must all be at least 1, got %d", w))
		}
	}
	if c.Hammer.BufferSize < 1 {
		return srvErrors.NewInvalidConfigurationError("buffer-size", "must be at least 1")
	}
	if !slices.Contains(sources, c.Hammer.Source) {
		return srvErrors.NewInvalidConfigurationError("source", fmt.Sprintf("must be one of %v", sources))
	}
	if !slices.Contains(formats, c.Hammer.Format) {
		return srvErrors.NewInvalidConfigurationError("format", fmt.Sprintf("must be one of %v", formats))
	}
	if c.Hammer.Format == FormatXLSX && c.Hammer.Output == "" {
		return srvErrors.NewInvalidConfigurationError("output", "is required for xlsx reports")
	}
	if c.Hammer.WaitReady < 0 {
		return srvErrors.NewInvalidConfigurationError("wait-ready", "must not be negative")
	}
	if c.Client.Timeout < 0 {
		return srvErrors.NewInvalidConfigurationError("timeout", "must not be negative")
	}
	return nil
}

// DebugMap returns the configuration as a map suitable for structured logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"hammer": map[string]any{
			"url":         c.Hammer.URL,
			"requests":    c.Hammer.Requests,
			"workers":     c.Hammer.Workers,
			"buffer-size": c.Hammer.BufferSize,
			"source":      c.Hammer.Source,
			"format":      c.Hammer.Format,
			"output":      c.Hammer.Output,
			"wait-ready":  c.Hammer.WaitReady.String(),
		},
		"client": map[string]any{
			"timeout":    c.Client.Timeout.String(),
			"user-agent": c.Client.UserAgent,
			"proxy-url":  c.Client.ProxyURL != "",
			"insecure":   c.Client.Insecure,
		},
		"nail": map[string]any{
			"ip-addr": c.Nail.IPAddr,
			"port":    c.Nail.Port,
			"mode":    c.Nail.Mode,
			"trace":   c.Nail.Trace,
			"seed":    c.Nail.Seed,
		},
		"log-format": c.LogFormat,
		"log-level":  c.LogLevel,
	}
}
