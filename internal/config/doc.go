// Package config defines the configuration structure for hammer and nail.
//
// Configuration is organized into logical sections (Hammer, Client, Nail). Defaults come
// from struct tags applied with creasty/defaults; an optional configuration file is read
// with viper; command-line flags (and their HAMMER_* / NAIL_* environment variables) are
// applied on top by the commands in cmd/.
//
// # Configuration Structure
//
//	Configuration
//	├── Hammer         - Load run settings
//	├── Client         - Per-worker HTTP client settings
//	├── Nail           - Test server settings
//	├── LogFormat      - Logging format ("console" or "json")
//	└── LogLevel       - Logging verbosity
//
// # Hammer Configuration
//
//	┌─────────────┬─────────────┬──────────────────────────────────────────────┐
//	│ Field       │ Default     │ Description                                  │
//	├─────────────┼─────────────┼──────────────────────────────────────────────┤
//	│ URL         │ ""          │ Target URL (required)                        │
//	│ Requests    │ 100         │ Requests per traversal                       │
//	│ Workers     │ [1,2,4,8]   │ Worker counts, one traversal each            │
//	│ BufferSize  │ 32          │ Result channel capacity                      │
//	│ Source      │ "repeat"    │ "repeat" or "subpages"                       │
//	│ Format      │ "text"      │ "text", "json", "csv" or "xlsx"              │
//	│ Output      │ ""          │ Report file, stdout when empty (not xlsx)    │
//	│ WaitReady   │ 0s          │ Poll the target until it answers, 0 = off    │
//	└─────────────┴─────────────┴──────────────────────────────────────────────┘
//
// # Client Configuration
//
//	┌───────────┬──────────────┬────────────────────────────────────────────┐
//	│ Field     │ Default      │ Description                                │
//	├───────────┼──────────────┼────────────────────────────────────────────┤
//	│ Timeout   │ 0s           │ Whole-request timeout, 0 = none            │
//	│ UserAgent │ "hammer/1.0" │ User-Agent header                          │
//	│ ProxyURL  │ ""           │ HTTP proxy                                 │
//	│ Insecure  │ false        │ Skip TLS certificate verification          │
//	└───────────┴──────────────┴────────────────────────────────────────────┘
//
// # Nail Configuration
//
//	┌────────┬─────────────┬──────────────────────────────────────────────┐
//	│ Field  │ Default     │ Description                                  │
//	├────────┼─────────────┼──────────────────────────────────────────────┤
//	│ IPAddr │ "127.0.0.1" │ Address to listen on                         │
//	│ Port   │ 8080        │ Port to listen on                            │
//	│ Mode   │ "release"   │ Gin mode: "release" or "debug"               │
//	│ Trace  │ false       │ Log every request                            │
//	│ Seed   │ 0           │ Subpage generation seed, 0 = random          │
//	└────────┴─────────────┴──────────────────────────────────────────────┘
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithDefaults()
//	if path != "" {
//	    if err := config.Load(path, cfg); err != nil {
//	        return err
//	    }
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	zap.S().Debugw("configuration loaded", "config", cfg.DebugMap())
package config
