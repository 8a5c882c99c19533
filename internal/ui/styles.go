// Package ui holds the terminal presentation layer: the adaptive Ayu
// palette, renderers for run status and system kind, markdown styling,
// and the pager handoff. Commands print through this package so listings,
// verify sweeps, and the explorer agree on what reduced or failed looks
// like.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	if !ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	} else {
		// TrueColor keeps the reduced/contradiction hues distinct
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// ApplyThemeMode pushes the resolved theme mode into lipgloss.
// Call after InitTheme.
func ApplyThemeMode() {
	if GetThemeMode() == ThemeModeOff {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	if !ShouldUseColor() {
		return
	}
	lipgloss.SetHasDarkBackground(HasDarkBackground())
}

// Semantic colors from the Ayu theme (github.com/ayu-theme/ayu-colors),
// with light and dark variants chosen per background.
var (
	ColorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Only states that demand attention get color. A built run is simply
// waiting, so it renders in standard text, as do leibniz systems; the
// quadratic associativity sweeps stand out in purple.
var (
	StatusReducedStyle       = lipgloss.NewStyle().Foreground(ColorPass)
	StatusContradictionStyle = lipgloss.NewStyle().
					Foreground(lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f26d78"}).
					Bold(true)
	KindAssocStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d2a6ff"))
)

// CommandStyle sets 'dga ...' references slightly off from standard text.
var CommandStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#5c6166",
	Dark:  "#bfbdb6",
})

// Check-style icons for verify output and message prefixes.
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✖"
)

// Run status icons. The hollow circle marks a system still awaiting
// reduction.
const (
	StatusIconBuilt         = "○"
	StatusIconReduced       = "✓"
	StatusIconContradiction = "✖"
)

func RenderPass(s string) string   { return PassStyle.Render(s) }
func RenderWarn(s string) string   { return WarnStyle.Render(s) }
func RenderFail(s string) string   { return FailStyle.Render(s) }
func RenderMuted(s string) string  { return MutedStyle.Render(s) }
func RenderAccent(s string) string { return AccentStyle.Render(s) }

// RenderCommand styles a runnable command suggestion.
func RenderCommand(s string) string { return CommandStyle.Render(s) }

func RenderPassIcon() string { return PassStyle.Render(IconPass) }
func RenderWarnIcon() string { return WarnStyle.Render(IconWarn) }
func RenderFailIcon() string { return FailStyle.Render(IconFail) }

// RenderID returns a run ID for display. IDs stay in standard text so
// they never compete with status colors; this is the single seam to
// change if that ever moves.
func RenderID(id string) string {
	return id
}

// RenderStatus colors a run status string. Reduced and contradiction
// carry color, everything else passes through.
func RenderStatus(status string) string {
	switch status {
	case "reduced":
		return StatusReducedStyle.Render(status)
	case "contradiction":
		return StatusContradictionStyle.Render(status)
	default:
		return status
	}
}

// RenderStatusIcon returns the colored icon for a run status. All
// commands go through here so the icons stay consistent.
func RenderStatusIcon(status string) string {
	switch status {
	case "built":
		return StatusIconBuilt
	case "reduced":
		return StatusReducedStyle.Render(StatusIconReduced)
	case "contradiction":
		return StatusContradictionStyle.Render(StatusIconContradiction)
	default:
		return "?"
	}
}

// RenderKind colors a system kind. Associativity sweeps get the purple
// treatment, leibniz stays plain.
func RenderKind(kind string) string {
	if kind == "associativity" {
		return KindAssocStyle.Render(kind)
	}
	return kind
}
