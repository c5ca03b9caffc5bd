// Package ui renders the human-readable command output.
//
// Status lines always carry their indicator character ("✅"/"❌") so the
// output stays machine-greppable; lipgloss styling is layered on top only
// when writing to a terminal and not suppressed with --no-color.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reporter writes command output to a single destination
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter creates a Reporter for the given writer.
// Color is enabled only when the writer is a terminal and noColor is false.
func NewReporter(out io.Writer, noColor bool) *Reporter {
	return &Reporter{
		out:   out,
		color: !noColor && isTerminal(out),
	}
}

// isTerminal reports whether the writer is attached to a TTY
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Success prints a success status line
func (r *Reporter) Success(msg string) {
	r.status("✅", msg, successStyle)
}

// Failure prints a failure status line
func (r *Reporter) Failure(msg string) {
	r.status("❌", msg, failureStyle)
}

func (r *Reporter) status(indicator, msg string, style styleRenderer) {
	if r.color {
		msg = style.Render(msg)
	}
	fmt.Fprintf(r.out, "%s %s\n", indicator, msg)
}

// Body echoes a raw response body (or an error marker) for diagnosis
func (r *Reporter) Body(body string) {
	body = strings.TrimRight(body, "\n")
	if body == "" {
		body = "(empty response body)"
	}
	if r.color {
		body = mutedStyle.Render(body)
	}
	fmt.Fprintln(r.out, body)
}

// Header prints a section header, used when printing multiple log sources
func (r *Reporter) Header(title string) {
	line := fmt.Sprintf("=== %s ===", title)
	if r.color {
		line = headerStyle.Render(line)
	}
	fmt.Fprintln(r.out, line)
}

// List prints an indented bullet list
func (r *Reporter) List(items []string) {
	for _, item := range items {
		fmt.Fprintf(r.out, "  - %s\n", item)
	}
}

// Println prints a plain line
func (r *Reporter) Println(a ...interface{}) {
	fmt.Fprintln(r.out, a...)
}

// Printf prints a plain formatted line
func (r *Reporter) Printf(format string, a ...interface{}) {
	fmt.Fprintf(r.out, format, a...)
}

// styleRenderer is the subset of lipgloss.Style the Reporter needs
type styleRenderer interface {
	Render(...string) string
}
