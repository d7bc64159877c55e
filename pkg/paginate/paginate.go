// Package paginate provides the page-window controller for jobdeck list
// screens. It owns current page, page size, and total item count, and derives
// slice bounds and navigation flags. It never fetches: callers react to page
// changes by re-fetching and then report the new count via SetTotalItems.
package paginate

// Pager tracks a 1-based current page over a collection of totalItems records
// split into pages of pageSize. Every mutation re-clamps the current page into
// [1, TotalPages], so deleting the last item of the last page moves the view
// back a page instead of showing an empty one.
type Pager struct {
	page  int
	size  int
	total int
}

// New creates a pager starting at page with the given page size. Values below
// one are normalized to one.
func New(page, size int) *Pager {
	p := &Pager{page: 1, size: 1}
	p.SetPageSize(size)
	p.GoTo(page)
	return p
}

// Page returns the current 1-based page.
func (p *Pager) Page() int { return p.page }

// PageSize returns the number of items per page.
func (p *Pager) PageSize() int { return p.size }

// TotalItems returns the last reported item count.
func (p *Pager) TotalItems() int { return p.total }

// TotalPages derives the page count, never less than one even for an empty
// collection.
func (p *Pager) TotalPages() int {
	pages := (p.total + p.size - 1) / p.size
	if pages < 1 {
		return 1
	}
	return pages
}

// GoTo moves to page n, clamped into [1, TotalPages]. Out-of-range requests
// are normalized, never errors.
func (p *Pager) GoTo(n int) {
	switch {
	case n < 1:
		p.page = 1
	case n > p.TotalPages():
		p.page = p.TotalPages()
	default:
		p.page = n
	}
}

// Next advances one page if possible.
func (p *Pager) Next() { p.GoTo(p.page + 1) }

// Prev moves back one page if possible.
func (p *Pager) Prev() { p.GoTo(p.page - 1) }

// CanNext reports whether a later page exists.
func (p *Pager) CanNext() bool { return p.page < p.TotalPages() }

// CanPrev reports whether an earlier page exists.
func (p *Pager) CanPrev() bool { return p.page > 1 }

// SetTotalItems records the collection size and re-clamps the current page.
// Negative counts are treated as zero.
func (p *Pager) SetTotalItems(n int) {
	if n < 0 {
		n = 0
	}
	p.total = n
	p.GoTo(p.page)
}

// SetPageSize changes the page size and re-clamps the current page. Sizes
// below one are normalized to one.
func (p *Pager) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	p.size = n
	p.GoTo(p.page)
}

// Bounds returns the 0-based half-open slice window [start, end) for the
// current page, clamped to the collection size.
func (p *Pager) Bounds() (start, end int) {
	start = (p.page - 1) * p.size
	if start > p.total {
		start = p.total
	}
	end = start + p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Showing returns the 1-based "Showing X to Y of Z" triple for the current
// page. An empty collection yields 0, 0, 0.
func (p *Pager) Showing() (from, to, total int) {
	if p.total == 0 {
		return 0, 0, 0
	}
	start, end := p.Bounds()
	return start + 1, end, p.total
}
