package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIBaseURL)
	assert.Equal(t, DefaultCacheFile, cfg.CachePath)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultDebounceMS, cfg.DebounceMS)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultServePort, cfg.ServePort)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "jobdeck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
api_base_url: http://localhost:9999
page_size: 25
output: json
`), 0o600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "json", cfg.OutputFormat)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultDebounceMS, cfg.DebounceMS)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "jobdeck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("page_size: 25\n"), 0o600))

	t.Setenv("JOBDECK_PAGE_SIZE", "50")
	t.Setenv("JOBDECK_VERBOSE", "true")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigFlagsWinOverEnv(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("JOBDECK_PAGE_SIZE", "50")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("page-size", DefaultPageSize, "")
	flags.String("api", "", "")
	require.NoError(t, flags.Parse([]string{"--page-size=5", "--api=http://flag.example"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, "http://flag.example", cfg.APIBaseURL)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("page-size", 99, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.PageSize, "unset flag default leaked into config")
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"zero page size", "page_size: 0\n", "invalid page_size"},
		{"negative debounce", "debounce_ms: -10\n", "invalid debounce_ms"},
		{"bad output", "output: xml\n", "invalid output format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ResetConfig()
			cfgPath := filepath.Join(t.TempDir(), "jobdeck.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tc.yaml), 0o600))

			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	logger := GetLogger(t.Context())
	require.NotNil(t, logger)
}
