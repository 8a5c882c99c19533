package ui

import "github.com/charmbracelet/glamour"

// Rendered markdown wraps at this width even on wide terminals.
const markdownWrapWidth = 100

// RenderMarkdown styles markdown for terminal display. When colors are
// off, or glamour cannot set up a renderer, the raw markdown comes back
// unchanged so the caller can print it as-is.
func RenderMarkdown(markdown string) string {
	if !ShouldUseColor() || GetThemeMode() == ThemeModeOff {
		return markdown
	}

	width := TerminalWidth()
	if width > markdownWrapWidth {
		width = markdownWrapWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}

	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
