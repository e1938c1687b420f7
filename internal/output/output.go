// Package output renders API responses and status lines for the terminal.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Printer writes rendered output. Results go to Out, status messages to
// Err, so JSON output stays pipeable.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// JSON writes a JSON document, pretty-printed or compacted.
func (p *Printer) JSON(result gjson.Result, prettyPrint bool) {
	raw := []byte(result.Raw)
	if result.Type == gjson.String {
		// Non-JSON response body, print verbatim.
		fmt.Fprintln(p.Out, result.String())
		return
	}
	if prettyPrint {
		raw = pretty.Pretty(raw)
	} else {
		raw = append(pretty.Ugly(raw), '\n')
	}
	p.Out.Write(raw)
}

// Table renders records as a column-aligned table. Missing fields render
// as empty cells.
func (p *Printer) Table(records []gjson.Result, columns []string, title string) {
	if title != "" {
		fmt.Fprintln(p.Out, infoStyle.Render(title))
	}
	fmt.Fprintln(p.Out, renderTable(records, columns))
}

// Success writes a confirmation line to Err.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Err, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Errorf writes an error line to Err.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.Err, errorStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Info writes an informational line to Err.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.Err, infoStyle.Render(fmt.Sprintf(format, args...)))
}

// Dim writes a low-emphasis line to Err (resolution traces, sources).
func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.Err, dimStyle.Render(fmt.Sprintf(format, args...)))
}
