// Package listview composes the jobdeck interaction engines into the pipeline
// every list screen uses: search narrows the source collection, sort orders
// it, pagination slices it — always in that order. The controller owns one
// instance of each engine; the caller owns all I/O and rendering.
package listview

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/jobdeck/pkg/debounce"
	"github.com/leapstack-labs/jobdeck/pkg/paginate"
	"github.com/leapstack-labs/jobdeck/pkg/sortable"
)

// MatchFunc reports whether a record matches a (non-empty) search query.
type MatchFunc[T any] func(rec T, query string) bool

// Config assembles a list controller.
type Config[T any] struct {
	Columns []sortable.Column
	// Value looks records up by column key; shared with the sort engine and
	// the default matcher.
	Value sortable.ValueFunc[T]
	// Match overrides the default case-insensitive substring match across all
	// column values.
	Match MatchFunc[T]
	// PageSize defaults to 10.
	PageSize int
	// DebounceDelay defaults to debounce.DefaultDelay.
	DebounceDelay time.Duration
	// Notify receives each settled query; the caller typically reacts by
	// re-reading Visible.
	Notify func(settled string)
	// Scheduler overrides the debounce timer source (tests).
	Scheduler debounce.Scheduler
}

// Controller wires the three list engines over a caller-supplied source
// slice. The source order is the ground truth that an un-sorted view falls
// back to.
type Controller[T any] struct {
	search *debounce.Engine
	sort   *sortable.Engine[T]
	pager  *paginate.Pager
	match  MatchFunc[T]
	source []T
}

// New creates a controller. The debounce engine starts; Close must be called
// on teardown so no settle fires against a disposed screen.
func New[T any](cfg Config[T]) *Controller[T] {
	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	c := &Controller[T]{
		sort:  sortable.New(cfg.Columns, cfg.Value),
		pager: paginate.New(1, pageSize),
		match: cfg.Match,
	}
	if c.match == nil {
		c.match = defaultMatch(cfg.Columns, cfg.Value)
	}

	opts := []debounce.Option{}
	if cfg.Notify != nil {
		opts = append(opts, debounce.WithNotify(cfg.Notify))
	}
	if cfg.Scheduler != nil {
		opts = append(opts, debounce.WithScheduler(cfg.Scheduler))
	}
	c.search = debounce.New(cfg.DebounceDelay, opts...)
	return c
}

// Search exposes the debounce engine for input binding.
func (c *Controller[T]) Search() *debounce.Engine { return c.search }

// Sort exposes the sort engine for header toggling.
func (c *Controller[T]) Sort() *sortable.Engine[T] { return c.sort }

// Pager exposes the pagination engine for navigation controls.
func (c *Controller[T]) Pager() *paginate.Pager { return c.pager }

// SetSource replaces the backing collection, typically after a fetch.
func (c *Controller[T]) SetSource(rows []T) {
	c.source = rows
	c.pager.SetTotalItems(len(c.filtered()))
}

// Visible returns the current page of the searched, sorted collection. The
// filtered count is re-reported to the pager first, so a shrinking result set
// re-clamps the page before slicing.
func (c *Controller[T]) Visible() []T {
	rows := c.filtered()
	c.pager.SetTotalItems(len(rows))
	rows = c.sort.Sort(rows)
	start, end := c.pager.Bounds()
	return rows[start:end]
}

// Showing returns the 1-based "Showing X to Y of Z" triple for the current
// filtered view.
func (c *Controller[T]) Showing() (from, to, total int) {
	c.pager.SetTotalItems(len(c.filtered()))
	return c.pager.Showing()
}

// Close releases the debounce timer.
func (c *Controller[T]) Close() {
	c.search.Close()
}

func (c *Controller[T]) filtered() []T {
	query := c.search.Settled()
	if query == "" {
		return c.source
	}
	out := make([]T, 0, len(c.source))
	for _, rec := range c.source {
		if c.match(rec, query) {
			out = append(out, rec)
		}
	}
	return out
}

func defaultMatch[T any](columns []sortable.Column, value sortable.ValueFunc[T]) MatchFunc[T] {
	return func(rec T, query string) bool {
		if value == nil {
			return false
		}
		q := strings.ToLower(query)
		for _, col := range columns {
			v := value(rec, col.Key)
			if v == nil {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprint(v)), q) {
				return true
			}
		}
		return false
	}
}
