package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ecosim/internal/grid"
	"github.com/san-kum/ecosim/internal/organism"
	"github.com/san-kum/ecosim/internal/sim"
)

var (
	fieldStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466"))
	statsStyle  = lipgloss.NewStyle().Padding(0, 2).Width(36)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true).MarginTop(1)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusStopped = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))
)

const (
	foxGlyph    = "F"
	rabbitGlyph = "r"
	emptyGlyph  = "·"
)

// cellStyles returns the fox and rabbit cell styles for a theme.
func cellStyles(t Theme) map[organism.Kind]lipgloss.Style {
	return map[organism.Kind]lipgloss.Style{
		organism.Fox:    lipgloss.NewStyle().Bold(true).Foreground(t.Fox),
		organism.Rabbit: lipgloss.NewStyle().Foreground(t.Rabbit),
	}
}

// RenderField draws v one glyph per cell, row by row.
func RenderField(v sim.View, t Theme) string {
	styles := cellStyles(t)
	empty := lipgloss.NewStyle().Foreground(t.Empty).Render(emptyGlyph)
	fox := styles[organism.Fox].Render(foxGlyph)
	rabbit := styles[organism.Rabbit].Render(rabbitGlyph)

	var b strings.Builder
	for r := 0; r < v.Depth(); r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < v.Width(); c++ {
			k, ok := v.KindAt(grid.Pos(r, c))
			switch {
			case !ok:
				b.WriteString(empty)
			case k == organism.Fox:
				b.WriteString(fox)
			default:
				b.WriteString(rabbit)
			}
		}
	}
	return b.String()
}

// Legend names each glyph in its theme color.
func Legend(t Theme) string {
	styles := cellStyles(t)
	return styles[organism.Fox].Render(foxGlyph) + " fox  " +
		styles[organism.Rabbit].Render(rabbitGlyph) + " rabbit"
}
