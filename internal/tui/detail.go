package tui

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/leapstack-labs/jobdeck/internal/api"
)

// Detail field sets for the record dialog. Fields are label/value pairs in
// display order; empty values render as blank rather than being dropped so
// the dialog layout stays stable across records.

func applicantFields(a api.Applicant) [][2]string {
	return [][2]string{
		{"Email", a.Email},
		{"Position", a.Position},
		{"Status", string(a.Status)},
		{"Applied", formatDate(a.AppliedAt)},
		{"ID", a.ID},
	}
}

func companyFields(c api.Company) [][2]string {
	return [][2]string{
		{"Industry", c.Industry},
		{"Location", c.Location},
		{"Open roles", fmt.Sprint(c.OpenRoles)},
		{"Joined", formatDate(c.CreatedAt)},
		{"ID", c.ID},
	}
}

func jobFields(j api.JobPost) [][2]string {
	workplace := "on-site"
	if j.Remote {
		workplace = "remote"
	}
	return [][2]string{
		{"Company", j.Company},
		{"Location", j.Location},
		{"Salary", formatSalary(j.SalaryMin, j.SalaryMax)},
		{"Workplace", workplace},
		{"Posted", formatDate(j.PostedAt)},
		{"About", j.Description},
		{"ID", j.ID},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatSalary(min, max int) string {
	switch {
	case min == 0 && max == 0:
		return ""
	case min == 0:
		return fmt.Sprintf("up to %d", max)
	case max == 0 || max == min:
		return fmt.Sprintf("%d", min)
	}
	return fmt.Sprintf("%d - %d", min, max)
}

// columnWidths sizes each column to its widest cell, header included, capped
// so one long description cannot push the rest of the table off screen.
const maxCellWidth = 32

func columnWidths(cols []sortableColumn, rows [][]string) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		// Leave room for the sort indicator on every header.
		widths[i] = utf8.RuneCountInString(col.Title) + 2
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > maxCellWidth {
			widths[i] = maxCellWidth
		}
	}
	return widths
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	for n < width {
		s += " "
		n++
	}
	return s
}
