// Package tui renders exercise progress to the terminal.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClearScreen is the terminal reset sequence written before every frame.
const ClearScreen = "\x1bc"

// Display clears the screen and draws a word and its progress. It keeps no
// exercise state and is not safe for concurrent use.
type Display struct {
	out    io.Writer
	styles styles
	upper  cases.Caser
}

// NewDisplay returns a Display writing to out. Colors are chosen for out's capabilities.
func NewDisplay(out io.Writer) *Display {
	return &Display{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
		upper:  cases.Upper(language.English),
	}
}

// Render draws target in uppercase as a header, followed by one cell per letter.
func (d *Display) Render(target, progress string) error {
	header := d.upper.String(target)
	cells := buildCells(d.styles, d.upper.String, []rune(target), []rune(progress))

	var b strings.Builder
	b.WriteString(ClearScreen)
	b.WriteString(d.styles.header.Render(header))
	b.WriteByte('\n')
	b.WriteString(d.styles.rule.Render(strings.Repeat("-", runewidth.StringWidth(header))))
	b.WriteByte('\n')
	b.WriteString(joinCells(cells))
	b.WriteByte('\n')

	if _, err := io.WriteString(d.out, b.String()); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}
