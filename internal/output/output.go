// Package output writes human-facing CLI output. Headings, successes,
// warnings and errors are styled with lipgloss when the writer is a color
// capable terminal and fall back to plain text otherwise.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console writes styled lines to a writer.
type Console struct {
	w       io.Writer
	heading lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// New returns a Console writing to w. The color profile is detected from w.
func New(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:       w,
		heading: r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer { return c.w }

// Printf writes unstyled formatted text.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
}

// Println writes an unstyled line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.w, args...)
}

// Heading writes a bold line.
func (c *Console) Heading(format string, args ...any) {
	fmt.Fprintln(c.w, c.heading.Render(fmt.Sprintf(format, args...)))
}

// Success writes a line prefixed with a check mark.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.w, c.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Warn writes a line prefixed with "warning:".
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.w, c.warning.Render("warning: "+fmt.Sprintf(format, args...)))
}

// Error writes a line prefixed with "error:".
func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.w, c.failure.Render("error: "+fmt.Sprintf(format, args...)))
}

// Muted writes a dimmed line.
func (c *Console) Muted(format string, args ...any) {
	fmt.Fprintln(c.w, c.muted.Render(fmt.Sprintf(format, args...)))
}
