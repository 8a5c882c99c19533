package ui

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ThemeMode selects the CLI color scheme. Auto follows the detected
// terminal background, dark and light force a palette, off disables
// ANSI colors entirely.
type ThemeMode string

const (
	ThemeModeAuto  ThemeMode = "auto"
	ThemeModeDark  ThemeMode = "dark"
	ThemeModeLight ThemeMode = "light"
	ThemeModeOff   ThemeMode = "off"
)

var (
	themeMode         ThemeMode
	hasDarkBackground bool
)

// InitTheme resolves and caches the theme mode. Call early in main.
// The DGA_THEME environment variable wins over configTheme, which wins
// over the "auto" default. Invalid values fall through to the next source.
func InitTheme(configTheme string) {
	themeMode = ThemeModeAuto
	for _, raw := range []string{os.Getenv("DGA_THEME"), configTheme} {
		if mode, ok := parseThemeMode(raw); ok {
			themeMode = mode
			break
		}
	}
	switch themeMode {
	case ThemeModeDark:
		hasDarkBackground = true
	case ThemeModeLight, ThemeModeOff:
		hasDarkBackground = false
	default:
		hasDarkBackground = termenv.HasDarkBackground()
	}
}

// GetThemeMode returns the mode cached by InitTheme.
func GetThemeMode() ThemeMode {
	return themeMode
}

// HasDarkBackground reports whether colors should target a dark
// background, as cached by InitTheme. Lipgloss AdaptiveColor keys
// off this to pick between palettes.
func HasDarkBackground() bool {
	return hasDarkBackground
}

func parseThemeMode(s string) (ThemeMode, bool) {
	switch strings.ToLower(s) {
	case "dark":
		return ThemeModeDark, true
	case "light":
		return ThemeModeLight, true
	case "auto":
		return ThemeModeAuto, true
	case "off":
		return ThemeModeOff, true
	}
	return ThemeModeAuto, false
}

// IsTerminal reports whether stdout is a TTY.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor reports whether output should carry ANSI colors,
// honoring the NO_COLOR, CLICOLOR, and CLICOLOR_FORCE conventions.
func ShouldUseColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if _, set := os.LookupEnv("CLICOLOR_FORCE"); set {
		return true
	}
	return IsTerminal()
}

// TerminalWidth returns the width of stdout in columns, or 80 when
// stdout is not a TTY or the size cannot be read.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		return width
	}
	return 80
}
