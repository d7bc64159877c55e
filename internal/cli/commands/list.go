package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jobdeck/internal/api"
	"github.com/leapstack-labs/jobdeck/internal/cli/output"
	"github.com/leapstack-labs/jobdeck/pkg/listview"
	"github.com/leapstack-labs/jobdeck/pkg/sortable"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		search   string
		sortKey  string
		sortDir  string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list <applicants|companies|jobs>",
		Short: "List a resource with search, sort, and pagination",
		Long: `List applicants, companies, or job posts.

The listing runs through the same pipeline as the interactive browser:
search narrows the collection, sort orders it, pagination slices it.

Output adapts to environment:
  - Terminal: styled table with a paging summary
  - Piped/Scripted: CSV

Use --output to override: auto, table, json, csv`,
		Example: `  # First page of job posts
  jobdeck list jobs

  # Applicants matching "engineer", newest first
  jobdeck list applicants --search engineer --sort applied_at --dir desc

  # Third page of companies, five per page, as JSON
  jobdeck list companies --page 3 --page-size 5 --output json`,
		ValidArgs: []string{"applicants", "companies", "jobs"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			dir, err := parseDirection(sortDir)
			if err != nil {
				return err
			}
			if pageSize == 0 {
				pageSize = cc.Cfg.PageSize
			}

			ds, source, err := cc.Dataset(cmd.Context())
			if err != nil {
				return err
			}
			cc.Logger.Debug("listing resource", "resource", args[0], "source", source)

			opts := listOptions{
				search:   search,
				sortKey:  sortKey,
				sortDir:  dir,
				page:     page,
				pageSize: pageSize,
			}

			switch args[0] {
			case "applicants":
				return renderList(cc, api.ApplicantColumns(), api.ApplicantValue, ds.Applicants, opts)
			case "companies":
				return renderList(cc, api.CompanyColumns(), api.CompanyValue, ds.Companies, opts)
			default:
				return renderList(cc, api.JobColumns(), api.JobValue, ds.Jobs, opts)
			}
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter records by substring match")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort column key")
	cmd.Flags().StringVar(&sortDir, "dir", "asc", "Sort direction (asc|desc)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Items per page (default from config)")

	return cmd
}

type listOptions struct {
	search   string
	sortKey  string
	sortDir  sortable.Direction
	page     int
	pageSize int
}

func parseDirection(raw string) (sortable.Direction, error) {
	switch raw {
	case "", "asc":
		return sortable.DirectionAsc, nil
	case "desc":
		return sortable.DirectionDesc, nil
	}
	return sortable.DirectionNone, fmt.Errorf("invalid direction %q: want asc or desc", raw)
}

// renderList runs one resource through the list pipeline and renders the
// visible page.
func renderList[T any](cc *CommandContext, cols []sortable.Column, value sortable.ValueFunc[T], rows []T, opts listOptions) error {
	lv := listview.New(listview.Config[T]{
		Columns:  cols,
		Value:    value,
		PageSize: opts.pageSize,
	})
	defer lv.Close()

	lv.SetSource(rows)
	lv.Search().Set(opts.search)
	lv.Search().Flush()
	if opts.sortKey != "" {
		lv.Sort().Set(opts.sortKey, opts.sortDir)
	}
	lv.Pager().GoTo(opts.page)

	visible := lv.Visible()
	pager := lv.Pager()

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		if visible == nil {
			visible = []T{}
		}
		return cc.Renderer.JSON(api.Page[T]{
			Data:       visible,
			Page:       pager.Page(),
			PageSize:   pager.PageSize(),
			TotalItems: pager.TotalItems(),
			TotalPages: pager.TotalPages(),
		})
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Title
	}
	cells := make([][]string, len(visible))
	for i, rec := range visible {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = formatCell(value(rec, col.Key))
		}
		cells[i] = row
	}

	if err := cc.Renderer.Records(headers, cells); err != nil {
		return err
	}
	from, to, total := lv.Showing()
	cc.Renderer.Summary(from, to, total, pager.Page(), pager.TotalPages())
	return nil
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format("2006-01-02")
	case string:
		return val
	}
	return fmt.Sprint(v)
}
