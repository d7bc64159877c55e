// Package tui implements the interactive browser. It is a thin rendering
// shell: all interaction state (search, sort, pagination, overlays) lives in
// the engines under pkg/, and the model translates key presses into engine
// calls and engine state into a frame.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/jobdeck/internal/api"
	"github.com/leapstack-labs/jobdeck/pkg/debounce"
	"github.com/leapstack-labs/jobdeck/pkg/listview"
	"github.com/leapstack-labs/jobdeck/pkg/overlay"
	"github.com/leapstack-labs/jobdeck/pkg/paginate"
)

// Config assembles the browser.
type Config struct {
	Dataset *api.Dataset
	// Source names where the dataset came from, shown in the footer.
	Source        string
	PageSize      int
	DebounceDelay time.Duration
	// Scheduler overrides the debounce timer source (tests).
	Scheduler debounce.Scheduler
}

type resourceTab int

const (
	tabApplicants resourceTab = iota
	tabCompanies
	tabJobs
)

var tabTitles = []string{"Applicants", "Companies", "Jobs"}

// searchSettledMsg is delivered when the debounced search query settles.
type searchSettledMsg struct{ query string }

// App is the browser model. Use NewApp; the zero value is not usable.
type App struct {
	keys  keyMap
	help  help.Model
	input textinput.Model

	active     resourceTab
	applicants *listview.Controller[api.Applicant]
	companies  *listview.Controller[api.Company]
	jobs       *listview.Controller[api.JobPost]

	stack  *overlay.Stack
	detail *overlay.Controller
	quit   *overlay.Controller

	detailTitle  string
	detailFields [][2]string

	selected  int
	searching bool
	source    string
	width     int
	settled   chan string
}

// NewApp builds the browser over a fetched dataset.
func NewApp(cfg Config) *App {
	a := &App{
		keys:    defaultKeyMap(),
		help:    help.New(),
		source:  cfg.Source,
		settled: make(chan string, 8),
	}

	a.input = textinput.New()
	a.input.Placeholder = "type to search"
	a.input.Prompt = "/ "
	a.input.CharLimit = 120

	notify := func(q string) {
		select {
		case a.settled <- q:
		default:
		}
	}
	a.applicants = listview.New(listview.Config[api.Applicant]{
		Columns:       api.ApplicantColumns(),
		Value:         api.ApplicantValue,
		PageSize:      cfg.PageSize,
		DebounceDelay: cfg.DebounceDelay,
		Notify:        notify,
		Scheduler:     cfg.Scheduler,
	})
	a.companies = listview.New(listview.Config[api.Company]{
		Columns:       api.CompanyColumns(),
		Value:         api.CompanyValue,
		PageSize:      cfg.PageSize,
		DebounceDelay: cfg.DebounceDelay,
		Notify:        notify,
		Scheduler:     cfg.Scheduler,
	})
	a.jobs = listview.New(listview.Config[api.JobPost]{
		Columns:       api.JobColumns(),
		Value:         api.JobValue,
		PageSize:      cfg.PageSize,
		DebounceDelay: cfg.DebounceDelay,
		Notify:        notify,
		Scheduler:     cfg.Scheduler,
	})

	if cfg.Dataset != nil {
		a.applicants.SetSource(cfg.Dataset.Applicants)
		a.companies.SetSource(cfg.Dataset.Companies)
		a.jobs.SetSource(cfg.Dataset.Jobs)
	}

	a.stack = overlay.NewStack()
	a.detail = overlay.NewWithStack(a.stack, overlay.Options{
		CloseOnEscape:        true,
		CloseOnBackdropClick: true,
		Label:                "Record details",
	})
	a.quit = overlay.NewWithStack(a.stack, overlay.Options{
		// Escape cancels the prompt; only y or enter quits.
		CloseOnEscape: true,
		Label:         "Quit jobdeck?",
	})

	return a
}

// Close releases the engines' timers. The browse command defers it around
// the program run.
func (a *App) Close() {
	a.applicants.Close()
	a.companies.Close()
	a.jobs.Close()
	a.detail.Dispose()
	a.quit.Dispose()
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.waitForSettle()
}

func (a *App) waitForSettle() tea.Cmd {
	return func() tea.Msg {
		q, ok := <-a.settled
		if !ok {
			return nil
		}
		return searchSettledMsg{query: q}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.help.Width = msg.Width
		return a, nil

	case searchSettledMsg:
		// The settled query changed the filtered set; pull the selection
		// back into range and keep listening.
		a.clampSelection()
		return a, a.waitForSettle()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.stack.Depth() > 0 {
		return a.handleOverlayKey(msg)
	}
	if a.searching {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quit.Open(nil)
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.input.SetValue(a.activeQuery())
		return a, a.input.Focus()

	case key.Matches(msg, a.keys.NextTab):
		a.active = (a.active + 1) % resourceTab(len(tabTitles))
		a.selected = 0
		return a, nil

	case key.Matches(msg, a.keys.Sort):
		a.toggleSort(int(msg.Runes[0] - '1'))
		return a, nil

	case key.Matches(msg, a.keys.ClearSort):
		a.resetSort()
		return a, nil

	case key.Matches(msg, a.keys.PrevPage):
		a.pager().Prev()
		a.selected = 0
		return a, nil

	case key.Matches(msg, a.keys.NextPage):
		a.pager().Next()
		a.selected = 0
		return a, nil

	case key.Matches(msg, a.keys.Up):
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.selected++
		a.clampSelection()
		return a, nil

	case key.Matches(msg, a.keys.Open):
		if title, fields, ok := a.selectedRecord(); ok {
			a.detailTitle = title
			a.detailFields = fields
			a.detail.Open(nil)
		}
		return a, nil

	case key.Matches(msg, a.keys.ToggleHelp):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case key.Matches(msg, a.keys.Escape):
		// Nothing open and not searching: clear any active filter.
		a.setQuery("")
		return a, nil
	}
	return a, nil
}

// handleOverlayKey routes keys while any overlay is open. Escape goes through
// the stack so only the topmost overlay reacts.
func (a *App) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.quit.IsOpen() && a.stack.Top() == a.quit {
		switch msg.String() {
		case "y", "Y", "enter":
			return a, tea.Quit
		case "n", "N":
			a.quit.Close()
			return a, nil
		}
	}

	switch {
	case key.Matches(msg, a.keys.Escape):
		a.stack.Escape()
	case key.Matches(msg, a.keys.Open):
		if a.detail.IsOpen() && a.stack.Top() == a.detail {
			a.detail.Close()
		}
	}
	return a, nil
}

// handleSearchKey routes keys while the search input has focus. Every
// keystroke updates the live query; the engine settles it after the quiet
// period.
func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Escape):
		a.searching = false
		a.input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Open):
		// Enter submits immediately, skipping the quiet period.
		a.flushQuery()
		a.searching = false
		a.input.Blur()
		a.clampSelection()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.setQuery(a.input.Value())
	return a, cmd
}

// --- active-resource dispatch ---

func (a *App) pager() *paginate.Pager {
	switch a.active {
	case tabCompanies:
		return a.companies.Pager()
	case tabJobs:
		return a.jobs.Pager()
	}
	return a.applicants.Pager()
}

func (a *App) activeQuery() string {
	switch a.active {
	case tabCompanies:
		return a.companies.Search().Query()
	case tabJobs:
		return a.jobs.Search().Query()
	}
	return a.applicants.Search().Query()
}

func (a *App) setQuery(q string) {
	switch a.active {
	case tabCompanies:
		a.companies.Search().Set(q)
	case tabJobs:
		a.jobs.Search().Set(q)
	default:
		a.applicants.Search().Set(q)
	}
}

func (a *App) flushQuery() {
	switch a.active {
	case tabCompanies:
		a.companies.Search().Flush()
	case tabJobs:
		a.jobs.Search().Flush()
	default:
		a.applicants.Search().Flush()
	}
}

func (a *App) toggleSort(idx int) {
	switch a.active {
	case tabCompanies:
		toggleColumn(a.companies, idx)
	case tabJobs:
		toggleColumn(a.jobs, idx)
	default:
		toggleColumn(a.applicants, idx)
	}
}

func toggleColumn[T any](lv *listview.Controller[T], idx int) {
	cols := lv.Sort().Columns()
	if idx < 0 || idx >= len(cols) {
		return
	}
	lv.Sort().Toggle(cols[idx].Key)
}

func (a *App) resetSort() {
	switch a.active {
	case tabCompanies:
		a.companies.Sort().Reset()
	case tabJobs:
		a.jobs.Sort().Reset()
	default:
		a.applicants.Sort().Reset()
	}
}

func (a *App) visibleRows() [][]string {
	switch a.active {
	case tabCompanies:
		return rowsOf(a.companies, api.CompanyValue)
	case tabJobs:
		return rowsOf(a.jobs, api.JobValue)
	}
	return rowsOf(a.applicants, api.ApplicantValue)
}

func rowsOf[T any](lv *listview.Controller[T], value func(T, string) any) [][]string {
	cols := lv.Sort().Columns()
	visible := lv.Visible()
	rows := make([][]string, len(visible))
	for i, rec := range visible {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = formatCell(value(rec, col.Key))
		}
		rows[i] = row
	}
	return rows
}

func (a *App) showing() (from, to, total int) {
	switch a.active {
	case tabCompanies:
		return a.companies.Showing()
	case tabJobs:
		return a.jobs.Showing()
	}
	return a.applicants.Showing()
}

func (a *App) clampSelection() {
	n := len(a.visibleRows())
	if n == 0 {
		a.selected = 0
		return
	}
	if a.selected >= n {
		a.selected = n - 1
	}
}

func (a *App) selectedRecord() (title string, fields [][2]string, ok bool) {
	switch a.active {
	case tabCompanies:
		visible := a.companies.Visible()
		if a.selected >= len(visible) {
			return "", nil, false
		}
		c := visible[a.selected]
		return c.Name, companyFields(c), true
	case tabJobs:
		visible := a.jobs.Visible()
		if a.selected >= len(visible) {
			return "", nil, false
		}
		j := visible[a.selected]
		return j.Title, jobFields(j), true
	}
	visible := a.applicants.Visible()
	if a.selected >= len(visible) {
		return "", nil, false
	}
	ap := visible[a.selected]
	return ap.Name, applicantFields(ap), true
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

// --- view ---

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderTabs())
	b.WriteString("\n")
	b.WriteString(a.renderSearch())
	b.WriteString("\n\n")
	b.WriteString(a.renderTable())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	frame := b.String()
	if a.stack.Depth() > 0 {
		return frame + "\n\n" + a.renderOverlay()
	}
	return frame
}

func (a *App) renderTabs() string {
	parts := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if resourceTab(i) == a.active {
			parts[i] = activeTabStyle.Render(title)
		} else {
			parts[i] = tabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderSearch() string {
	if a.searching {
		return searchStyle.Render(a.input.View())
	}
	if q := a.activeQuery(); q != "" {
		return searchStyle.Render("/ " + q)
	}
	return footerStyle.Render("press / to search")
}

func (a *App) renderTable() string {
	cols := a.activeColumns()
	rows := a.visibleRows()
	widths := columnWidths(cols, rows)

	var b strings.Builder

	headerCells := make([]string, len(cols))
	for i, col := range cols {
		label := col.Title + sortIndicator(a.sortIcon(col.Key))
		headerCells[i] = pad(label, widths[i])
	}
	b.WriteString(headerStyle.Render(strings.Join(headerCells, "  ")))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(footerStyle.Render("no matching records"))
		b.WriteString("\n")
		return b.String()
	}

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = pad(cell, widths[j])
		}
		line := strings.Join(cells, "  ")
		if i == a.selected {
			b.WriteString(selectedRowStyle.Render("> " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) activeColumns() []sortableColumn {
	var cols []sortableColumn
	switch a.active {
	case tabCompanies:
		for _, c := range a.companies.Sort().Columns() {
			cols = append(cols, sortableColumn{Key: c.Key, Title: c.Title})
		}
	case tabJobs:
		for _, c := range a.jobs.Sort().Columns() {
			cols = append(cols, sortableColumn{Key: c.Key, Title: c.Title})
		}
	default:
		for _, c := range a.applicants.Sort().Columns() {
			cols = append(cols, sortableColumn{Key: c.Key, Title: c.Title})
		}
	}
	return cols
}

type sortableColumn struct {
	Key   string
	Title string
}

func (a *App) sortIcon(key string) string {
	var dir string
	switch a.active {
	case tabCompanies:
		dir = string(a.companies.Sort().Icon(key))
	case tabJobs:
		dir = string(a.jobs.Sort().Icon(key))
	default:
		dir = string(a.applicants.Sort().Icon(key))
	}
	return dir
}

func sortIndicator(dir string) string {
	switch dir {
	case "asc":
		return " ▲"
	case "desc":
		return " ▼"
	}
	return ""
}

func (a *App) renderFooter() string {
	from, to, total := a.showing()
	pager := a.pager()

	var summary string
	if total == 0 {
		summary = "no results"
	} else {
		summary = fmt.Sprintf("showing %d-%d of %d · page %d/%d", from, to, total, pager.Page(), pager.TotalPages())
	}
	if a.source != "" {
		summary += " · " + a.source
	}

	return footerStyle.Render(summary) + "\n" + a.help.View(a.keys)
}

func (a *App) renderOverlay() string {
	if a.quit.IsOpen() && a.stack.Top() == a.quit {
		body := dialogTitleStyle.Render(a.quit.Options().Label) + "\n\n" +
			"y: quit    n: stay"
		return dialogStyle.Render(body)
	}
	if a.detail.IsOpen() {
		var b strings.Builder
		b.WriteString(dialogTitleStyle.Render(a.detailTitle))
		b.WriteString("\n\n")
		for _, f := range a.detailFields {
			b.WriteString(fieldLabelStyle.Render(f[0]))
			b.WriteString(f[1])
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("esc to close"))
		return dialogStyle.Render(b.String())
	}
	return ""
}
