package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/commalg/dgares/internal/style"
	"github.com/commalg/dgares/internal/ui"
)

// Styles for the explore TUI, drawn from the Ayu palette in internal/ui.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorAccent)

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15"))

	dimStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(ui.ColorAccent)

	failStyle = lipgloss.NewStyle().
			Foreground(ui.ColorFail).
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPass)

	nonlinearStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarn)
)

// View renders the model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	// Header: run identity plus system and reduction summary.
	b.WriteString(titleStyle.Render(fmt.Sprintf("dga explore %s", m.meta.Short())))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · n=%d", m.meta.Kind, m.sys.N)))
	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")

	// Equation list window.
	lh := m.listHeight()
	for row := m.offset; row < m.offset+lh; row++ {
		if row >= len(m.rows) {
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	// Separator doubles as the focus indicator for the detail pane.
	sepWidth := m.width
	if sepWidth < 1 {
		sepWidth = 1
	}
	sep := strings.Repeat("─", sepWidth)
	if m.detailFocus {
		b.WriteString(accentStyle.Render(sep))
	} else {
		b.WriteString(dimStyle.Render(sep))
	}
	b.WriteString("\n")

	b.WriteString(m.detail.View())
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return b.String()
}

// renderSummary builds the second header line: counts and reduction state.
func (m Model) renderSummary() string {
	parts := []string{
		fmt.Sprintf("%s equations", style.Count(m.sys.Len())),
		fmt.Sprintf("%s affine", style.Count(m.sys.AffineCount())),
	}
	if m.affineOnly {
		parts = append(parts, accentStyle.Render("filter: affine"))
	}
	if m.red != nil {
		parts = append(parts, fmt.Sprintf("rank %d", m.red.Rank))
		parts = append(parts, fmt.Sprintf("%d free", len(m.red.Free)))
		if m.red.Contradiction {
			parts = append(parts, failStyle.Render("contradiction"))
		} else {
			parts = append(parts, passStyle.Render("consistent"))
		}
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}

// renderRow formats one visible equation line.
func (m Model) renderRow(row int) string {
	idx := m.rows[row]
	eq := m.sys.Equations[idx]

	marker := " "
	if !eq.IsAffine() {
		marker = "²"
	}
	line := fmt.Sprintf(" %5d %s %s", idx+1, marker, eq.Key())
	if m.width > 0 {
		line = truncateLine(line, m.width)
	}

	switch {
	case row == m.cursor && !m.detailFocus:
		return selectedStyle.Render(line)
	case !eq.IsAffine():
		return nonlinearStyle.Render(line)
	default:
		return line
	}
}

// truncateLine shortens a line to the given rune length, preserving UTF-8.
func truncateLine(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
