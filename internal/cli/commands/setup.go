// Package commands implements the jobdeck subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jobdeck/internal/api"
	"github.com/leapstack-labs/jobdeck/internal/cli/config"
	"github.com/leapstack-labs/jobdeck/internal/cli/output"
	"github.com/leapstack-labs/jobdeck/internal/store"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Client   *api.Client
}

// NewCommandContext assembles the shared dependencies from the loaded
// configuration and the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
		Client:   api.NewClient(cfg.APIBaseURL, api.WithLogger(logger)),
	}
}

// Dataset resolves the records to operate on. A synced cache wins; otherwise
// the client fetches from the API, or serves the embedded fixtures in offline
// mode. The returned source names which path was taken: cache, api, or
// fixtures.
func (c *CommandContext) Dataset(ctx context.Context) (*api.Dataset, string, error) {
	if c.Cfg.CachePath != "" {
		if _, err := os.Stat(c.Cfg.CachePath); err == nil {
			st, err := store.Open(c.Cfg.CachePath, c.Logger)
			if err != nil {
				return nil, "", fmt.Errorf("failed to open cache: %w", err)
			}
			defer func() { _ = st.Close() }()

			empty, err := st.Empty(ctx)
			if err != nil {
				return nil, "", err
			}
			if !empty {
				ds, err := st.Dataset(ctx)
				return ds, "cache", err
			}
			c.Logger.Debug("cache exists but is empty, falling back", "path", c.Cfg.CachePath)
		}
	}

	ds, err := c.Client.Dataset(ctx)
	if err != nil {
		return nil, "", err
	}
	if c.Client.Offline() {
		return ds, "fixtures", nil
	}
	return ds, "api", nil
}

// getConfig returns the loaded configuration, or env-derived defaults when a
// command runs without the root's PersistentPreRunE (tests, mostly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		APIBaseURL:   os.Getenv("JOBDECK_API_BASE_URL"),
		CachePath:    getEnvOrDefault("JOBDECK_CACHE_PATH", config.DefaultCacheFile),
		PageSize:     getEnvIntOrDefault("JOBDECK_PAGE_SIZE", config.DefaultPageSize),
		DebounceMS:   getEnvIntOrDefault("JOBDECK_DEBOUNCE_MS", config.DefaultDebounceMS),
		OutputFormat: getEnvOrDefault("JOBDECK_OUTPUT", config.DefaultOutput),
		ServePort:    getEnvIntOrDefault("JOBDECK_SERVE_PORT", config.DefaultServePort),
		Verbose:      os.Getenv("JOBDECK_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
