// Package reportfmt renders a diagnostic ledger for people and machines.
package reportfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"lefcheck/internal/diag"
)

// Entry is one non-empty report category.
type Entry struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Lines    []string `json:"lines"`
}

// Entries collapses a ledger into report entries, категории в фиксированном
// пользовательском порядке, пустые пропущены.
func Entries(l *diag.Ledger) []Entry {
	var out []Entry
	for _, cat := range diag.Categories() {
		lines := l.Lines(cat)
		if len(lines) == 0 {
			continue
		}
		out = append(out, Entry{
			Category: cat.String(),
			Title:    cat.Title(),
			Lines:    lines,
		})
	}
	return out
}

// TextOpts controls human-readable rendering.
type TextOpts struct {
	Color bool
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	countColor   = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
)

// Text writes the categorized report. Категории идут в фиксированном
// порядке; внутри категории строки в порядке обнаружения.
func Text(w io.Writer, l *diag.Ledger, opts TextOpts) {
	prevNoColor := color.NoColor
	if !opts.Color {
		color.NoColor = true
	}
	defer func() { color.NoColor = prevNoColor }()

	if l.Empty() {
		fmt.Fprintln(w, okColor.Sprint("no findings"))
		return
	}
	for _, e := range Entries(l) {
		fmt.Fprintf(w, "%s %s\n", headingColor.Sprint(e.Title), countColor.Sprintf("(%d)", len(e.Lines)))
		for _, line := range e.Lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
