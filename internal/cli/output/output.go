// Package output renders command results as styled tables for terminals and
// as JSON or CSV for scripts. Auto mode picks per destination: a TTY gets the
// styled table, a pipe gets CSV.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
	ModeCSV   Mode = "csv"
)

// Renderer writes command output in the configured mode.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    Mode
	profile termenv.Profile
}

// NewRenderer creates a renderer. An unknown mode falls back to auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeTable, ModeJSON, ModeCSV:
	default:
		mode = ModeAuto
	}
	return &Renderer{
		out:     out,
		errOut:  errOut,
		mode:    mode,
		profile: termenv.NewOutput(out).Profile,
	}
}

// Writer returns the destination writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// EffectiveMode resolves auto against the destination: table on a terminal,
// CSV otherwise.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTerminal() {
		return ModeTable
	}
	return ModeCSV
}

func (r *Renderer) isTerminal() bool {
	f, ok := r.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Records renders headers and rows in the effective mode.
func (r *Renderer) Records(headers []string, rows [][]string) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.recordsJSON(headers, rows)
	case ModeCSV:
		r.buildTable(headers, rows).RenderCSV()
		return nil
	default:
		t := r.buildTable(headers, rows)
		t.SetStyle(table.StyleLight)
		if f, ok := r.out.(*os.File); ok {
			if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
				t.SetAllowedRowLength(width)
			}
		}
		t.Render()
		return nil
	}
}

func (r *Renderer) buildTable(headers []string, rows [][]string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}
	return t
}

func (r *Renderer) recordsJSON(headers []string, rows [][]string) error {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		out = append(out, rec)
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// JSON encodes v directly, regardless of mode. Commands use it for payloads
// that are not tabular.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Summary prints the "Showing X to Y of Z" line under a table. It is skipped
// for JSON and CSV output, which must stay machine-parseable.
func (r *Renderer) Summary(from, to, total, page, totalPages int) {
	if r.EffectiveMode() != ModeTable {
		return
	}
	if total == 0 {
		fmt.Fprintln(r.out, r.faint("No results."))
		return
	}
	line := fmt.Sprintf("Showing %d to %d of %d (page %d of %d)", from, to, total, page, totalPages)
	fmt.Fprintln(r.out, r.faint(line))
}

func (r *Renderer) faint(s string) string {
	if r.profile == termenv.Ascii {
		return s
	}
	return r.profile.String(s).Faint().String()
}

// Println writes a plain line to the destination.
func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

// Printf writes formatted text to the destination.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted text to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, format, args...)
}
