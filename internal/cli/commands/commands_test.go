package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jobdeck/internal/api"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{
			name:    "default version",
			version: "0.1.0",
			wantOut: []string{"jobdeck v0.1.0", "recruitment portal"},
		},
		{
			name:    "dev version",
			version: "dev",
			wantOut: []string{"jobdeck vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			require.NoError(t, cmd.Execute())
			for _, want := range tt.wantOut {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNewListCommandMetadata(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list <applicants|companies|jobs>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"search", "sort", "dir", "page", "page-size"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewServeCommandMetadata(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"port", "data", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewSyncCommandMetadata(t *testing.T) {
	cmd := NewSyncCommand()

	assert.Equal(t, "sync", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewBrowseCommandMetadata(t *testing.T) {
	cmd := NewBrowseCommand()

	assert.Equal(t, "browse", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

// execute runs a command offline against the embedded fixtures and captures
// stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JOBDECK_API_BASE_URL", "")
	t.Setenv("JOBDECK_OUTPUT", "json")
	if os.Getenv("JOBDECK_CACHE_PATH") == "" {
		t.Setenv("JOBDECK_CACHE_PATH", filepath.Join(t.TempDir(), "absent.db"))
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestListCommandRendersFixturesAsJSON(t *testing.T) {
	out, err := execute(t, NewListCommand(), "jobs", "--page-size", "3")
	require.NoError(t, err)

	var page api.Page[api.JobPost]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.PageSize)
	assert.Len(t, page.Data, 3)
	assert.Greater(t, page.TotalItems, 3)
}

func TestListCommandAppliesSearchAndSort(t *testing.T) {
	out, err := execute(t, NewListCommand(), "jobs",
		"--search", "berlin", "--sort", "salary_max", "--dir", "desc")
	require.NoError(t, err)

	var page api.Page[api.JobPost]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.NotEmpty(t, page.Data)
	for i := 1; i < len(page.Data); i++ {
		assert.GreaterOrEqual(t, page.Data[i-1].SalaryMax, page.Data[i].SalaryMax)
	}
	for _, j := range page.Data {
		assert.Equal(t, "Berlin", j.Location)
	}
}

func TestListCommandRejectsInvalidDirection(t *testing.T) {
	_, err := execute(t, NewListCommand(), "jobs", "--dir", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid direction")
}

func TestListCommandRejectsUnknownResource(t *testing.T) {
	_, err := execute(t, NewListCommand(), "recruiters")
	require.Error(t, err)
}

func TestSyncCommandPopulatesCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "nested", "cache.db")
	t.Setenv("JOBDECK_CACHE_PATH", cachePath)

	out, err := execute(t, NewSyncCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Synced")
	assert.Contains(t, out, "embedded fixtures")

	_, err = os.Stat(cachePath)
	require.NoError(t, err, "cache database should exist after sync")

	// A subsequent listing resolves from the cache instead of the fixtures.
	listOut, err := execute(t, NewListCommand(), "applicants")
	require.NoError(t, err)

	var page api.Page[api.Applicant]
	require.NoError(t, json.Unmarshal([]byte(listOut), &page))
	fx, fxErr := api.Fixtures()
	require.NoError(t, fxErr)
	assert.Equal(t, len(fx.Applicants), page.TotalItems)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: ""},
		{raw: "asc"},
		{raw: "desc"},
		{raw: "up", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("dir "+tt.raw, func(t *testing.T) {
			_, err := parseDirection(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
