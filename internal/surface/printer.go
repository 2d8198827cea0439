package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/tablekit/internal/table"
	"github.com/muurk/tablekit/internal/theme"
)

// Printer renders contents to a writer without an interactive program.
// Every row is materialized once, without a reuse pool.
type Printer struct {
	out   io.Writer
	width int
	theme theme.Provider
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer, provider theme.Provider) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: theme.GetTerminalWidth(),
		theme: provider,
	}
}

// SetWidth overrides the detected terminal width.
func (p *Printer) SetWidth(width int) *Printer {
	if width > 0 {
		p.width = width
	}
	return p
}

// Width returns the width used by this printer
func (p *Printer) Width() int {
	return p.width
}

func (p *Printer) appearance() theme.Appearance {
	if p.theme == nil {
		return theme.NewAppearance(true, 1)
	}
	return p.theme.Appearance()
}

// RenderTitle renders the contents title in a rounded box.
func (p *Printer) RenderTitle(title string) string {
	a := p.appearance()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.Palette.Primary).
		Foreground(a.Palette.Text).
		Bold(true).
		Padding(0, 1).
		Width(p.width - 2).
		Render(strings.ToUpper(title))
}

// Render renders the whole contents as a string.
func (p *Printer) Render(c *table.Contents) string {
	a := p.appearance()
	m := table.Materializer{}
	rowWidth := p.width - 2

	var blocks []string
	if c != nil && c.Title != "" {
		blocks = append(blocks, p.RenderTitle(c.Title))
	}

	for s := 0; s < c.NumberOfSections(); s++ {
		section := c.Section(s)
		var lines []string
		if section.HeaderTitle != "" {
			lines = append(lines, a.HeaderStyle().Render(strings.ToUpper(section.HeaderTitle)))
		}
		for r := 0; r < c.NumberOfRows(s); r++ {
			row := m.Materialize(c, table.IndexPath{Section: s, Row: r})
			for _, line := range strings.Split(row.Render(rowWidth), "\n") {
				lines = append(lines, "  "+line)
			}
		}
		if section.FooterTitle != "" {
			footer := a.FooterStyle().Width(rowWidth).Render(section.FooterTitle)
			for _, line := range strings.Split(footer, "\n") {
				lines = append(lines, "  "+line)
			}
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

// PrintContents writes the rendered contents followed by a newline.
func (p *Printer) PrintContents(c *table.Contents) error {
	if _, err := fmt.Fprintln(p.out, p.Render(c)); err != nil {
		return fmt.Errorf("failed to write contents: %w", err)
	}
	return nil
}
