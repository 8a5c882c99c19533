package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_ColorDisabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	markdown := "# Header\n\nSome content"
	if got := RenderMarkdown(markdown); got != markdown {
		t.Errorf("RenderMarkdown() with color disabled should return raw markdown, got %q", got)
	}
}

func TestRenderMarkdown_ThemeOff(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "1")
	t.Setenv("DGA_THEME", "off")
	InitTheme("")

	markdown := "**bold**"
	if got := RenderMarkdown(markdown); got != markdown {
		t.Errorf("RenderMarkdown() with theme off should return raw markdown, got %q", got)
	}
}

func TestRenderMarkdown_EmptyString(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := RenderMarkdown(""); got != "" {
		t.Errorf("RenderMarkdown() with empty string should return empty, got %q", got)
	}
}

func TestRenderMarkdown_PreservesContent(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	markdown := "Line 1\n\n```go\nfunc main() {}\n```\n\n[link text](https://example.com)"
	result := RenderMarkdown(markdown)

	for _, want := range []string{"Line 1", "func main", "link text"} {
		if !strings.Contains(result, want) {
			t.Errorf("RenderMarkdown() lost %q from output", want)
		}
	}
}
