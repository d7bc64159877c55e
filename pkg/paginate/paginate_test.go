package paginate

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 1, 100},
	}

	for _, tt := range tests {
		p := New(1, tt.size)
		p.SetTotalItems(tt.total)
		if got := p.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestGoTo_Clamps(t *testing.T) {
	p := New(1, 10)
	p.SetTotalItems(25)

	p.GoTo(5)
	if p.Page() != 3 {
		t.Errorf("GoTo(5) clamped to %d, want 3", p.Page())
	}

	p.GoTo(0)
	if p.Page() != 1 {
		t.Errorf("GoTo(0) clamped to %d, want 1", p.Page())
	}

	p.GoTo(-7)
	if p.Page() != 1 {
		t.Errorf("GoTo(-7) clamped to %d, want 1", p.Page())
	}
}

func TestSetTotalItems_ReclampsAfterDelete(t *testing.T) {
	p := New(1, 10)
	p.SetTotalItems(25)
	p.GoTo(3)

	// Most records deleted: the view must fall back to a valid page.
	p.SetTotalItems(5)
	if p.Page() != 1 {
		t.Errorf("page after shrink = %d, want 1", p.Page())
	}
	if p.TotalPages() != 1 {
		t.Errorf("total pages after shrink = %d, want 1", p.TotalPages())
	}
}

func TestEmptyCollection(t *testing.T) {
	p := New(1, 10)
	p.SetTotalItems(0)

	if p.TotalPages() != 1 {
		t.Errorf("TotalPages = %d, want 1", p.TotalPages())
	}
	if p.Page() != 1 {
		t.Errorf("Page = %d, want 1", p.Page())
	}
	if p.CanNext() || p.CanPrev() {
		t.Error("navigation flags should both be false when empty")
	}
	if from, to, total := p.Showing(); from != 0 || to != 0 || total != 0 {
		t.Errorf("Showing = %d, %d, %d; want zeros", from, to, total)
	}
}

func TestNextPrevFlags(t *testing.T) {
	p := New(1, 10)
	p.SetTotalItems(25)

	if p.CanPrev() {
		t.Error("CanPrev on first page")
	}
	if !p.CanNext() {
		t.Error("CanNext should be true on first page of three")
	}

	p.Next()
	p.Next()
	if p.Page() != 3 {
		t.Errorf("page after two Next = %d", p.Page())
	}
	if p.CanNext() {
		t.Error("CanNext on last page")
	}

	// Navigating past the end is absorbed.
	p.Next()
	if p.Page() != 3 {
		t.Errorf("Next past end moved to %d", p.Page())
	}

	p.Prev()
	if p.Page() != 2 || !p.CanPrev() || !p.CanNext() {
		t.Errorf("middle page state wrong: page=%d", p.Page())
	}
}

func TestSetPageSize_Reclamps(t *testing.T) {
	p := New(1, 10)
	p.SetTotalItems(25)
	p.GoTo(3)

	p.SetPageSize(25)
	if p.Page() != 1 {
		t.Errorf("page after size change = %d, want 1", p.Page())
	}
	if p.TotalPages() != 1 {
		t.Errorf("total pages = %d, want 1", p.TotalPages())
	}

	p.SetPageSize(0)
	if p.PageSize() != 1 {
		t.Errorf("page size normalized to %d, want 1", p.PageSize())
	}
}

func TestBoundsAndShowing(t *testing.T) {
	p := New(1, 10)
	p.SetTotalItems(25)

	if start, end := p.Bounds(); start != 0 || end != 10 {
		t.Errorf("page 1 bounds = [%d, %d)", start, end)
	}

	p.GoTo(3)
	if start, end := p.Bounds(); start != 20 || end != 25 {
		t.Errorf("page 3 bounds = [%d, %d)", start, end)
	}
	if from, to, total := p.Showing(); from != 21 || to != 25 || total != 25 {
		t.Errorf("Showing = %d, %d, %d", from, to, total)
	}
}

func TestNew_NormalizesArguments(t *testing.T) {
	p := New(-3, 0)
	if p.Page() != 1 || p.PageSize() != 1 {
		t.Errorf("New(-3, 0) = page %d size %d", p.Page(), p.PageSize())
	}
}
