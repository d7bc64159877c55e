// Package config loads jobdeck's CLI configuration from defaults, an
// optional jobdeck.yaml, JOBDECK_* environment variables, and flags, in
// ascending precedence.
package config

// Defaults applied before any other source.
const (
	DefaultCacheFile  = ".jobdeck/cache.db"
	DefaultPageSize   = 10
	DefaultDebounceMS = 300
	DefaultOutput     = "auto"
	DefaultServePort  = 8600
)

// Config is the resolved CLI configuration.
type Config struct {
	// APIBaseURL points at a jobdeck API server. Empty means offline mode:
	// commands fall back to the cache and then the embedded fixtures.
	APIBaseURL string `koanf:"api_base_url"`
	// CachePath is the local SQLite cache written by sync.
	CachePath string `koanf:"cache_path"`
	// PageSize is the default list page size.
	PageSize int `koanf:"page_size"`
	// DebounceMS is the search quiet period in milliseconds.
	DebounceMS int `koanf:"debounce_ms"`
	// OutputFormat selects the renderer: auto, table, json, or csv.
	OutputFormat string `koanf:"output"`
	// ServePort is the mock API server port.
	ServePort int  `koanf:"serve_port"`
	Verbose   bool `koanf:"verbose"`
}
