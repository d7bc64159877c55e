package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jobdeck/internal/store"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the portal dataset into the local cache",
		Long: `Fetch applicants, companies, and job posts and replace the local
SQLite cache with them in one transaction. Subsequent list and browse calls
read from the cache.

Without an API base URL the embedded fixtures are synced, which is useful for
trying the tool out offline.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			ctx := cmd.Context()

			ds, err := cc.Client.Dataset(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch dataset: %w", err)
			}

			cacheDir := filepath.Dir(cc.Cfg.CachePath)
			if cacheDir != "." && cacheDir != "" {
				if err := os.MkdirAll(cacheDir, 0o750); err != nil {
					return fmt.Errorf("failed to create cache directory: %w", err)
				}
			}

			st, err := store.Open(cc.Cfg.CachePath, cc.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.ReplaceDataset(ctx, ds); err != nil {
				return err
			}

			source := cc.Cfg.APIBaseURL
			if cc.Client.Offline() {
				source = "embedded fixtures"
			}
			cc.Renderer.Printf("Synced %d applicants, %d companies, %d job posts from %s\n",
				len(ds.Applicants), len(ds.Companies), len(ds.Jobs), source)
			cc.Renderer.Printf("Cache: %s\n", cc.Cfg.CachePath)
			return nil
		},
	}
}
