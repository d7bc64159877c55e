package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jobdeck/internal/tui"
)

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the portal interactively",
		Long: `Open the interactive browser: tab between applicants, companies,
and job posts; type to search (debounced), click through sort orders with the
column hotkeys, page with left/right, and open a record with enter.

Data comes from the local cache when synced, otherwise from the API or the
embedded fixtures.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)

			ds, source, err := cc.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			cc.Logger.Debug("starting browser", "source", source)

			app := tui.NewApp(tui.Config{
				Dataset:       ds,
				Source:        source,
				PageSize:      cc.Cfg.PageSize,
				DebounceDelay: time.Duration(cc.Cfg.DebounceMS) * time.Millisecond,
			})
			defer app.Close()

			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browser exited with error: %w", err)
			}
			return nil
		},
	}
}
