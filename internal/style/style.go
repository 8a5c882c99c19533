// Package style holds the shared Lipgloss styles and text helpers for
// command output. Colors come from the internal/ui palette so tables,
// prefixes, and the explorer stay visually consistent.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/commalg/dgares/internal/ui"
)

// Message-level styles. Success, Warning, and Error render bold in their
// semantic color; Info and Dim carry accents and secondary text.
var (
	Success = lipgloss.NewStyle().Foreground(ui.ColorPass).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(ui.ColorWarn).Bold(true)
	Error   = lipgloss.NewStyle().Foreground(ui.ColorFail).Bold(true)
	Info    = lipgloss.NewStyle().Foreground(ui.ColorAccent)
	Dim     = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	Bold    = lipgloss.NewStyle().Bold(true)
)

// Line prefixes for status messages ("✓ Built ...", "→ Next: ...").
var (
	SuccessPrefix = Success.Render(ui.IconPass)
	WarningPrefix = Warning.Render(ui.IconWarn)
	ErrorPrefix   = Error.Render(ui.IconFail)
	ArrowPrefix   = Info.Render("→")
)

// counts formats integers with thousands separators. Equation sweeps
// routinely produce six-digit counts, which are unreadable without grouping.
var counts = message.NewPrinter(language.English)

// Count formats n with thousands separators ("12,345").
func Count(n int) string {
	return counts.Sprintf("%d", n)
}
