package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const placeholder = "_"

type styles struct {
	header  lipgloss.Style
	rule    lipgloss.Style
	typed   lipgloss.Style
	pending lipgloss.Style
	cursor  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	pending := r.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	return styles{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A")),
		rule:    r.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		typed:   r.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		pending: pending,
		cursor:  pending.Underline(true),
	}
}

// buildCells renders one cell per target position: the uppercased letter once
// typed, the placeholder otherwise. The first untyped cell carries the cursor.
func buildCells(st styles, upper func(string) string, target, progress []rune) []string {
	out := make([]string, 0, len(target))
	for i, r := range target {
		switch {
		case i < len(progress):
			out = append(out, st.typed.Render(upper(string(r))))
		case i == len(progress):
			out = append(out, st.cursor.Render(placeholder))
		default:
			out = append(out, st.pending.Render(placeholder))
		}
	}
	return out
}

func joinCells(cells []string) string {
	return strings.Join(cells, " ")
}
