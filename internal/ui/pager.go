package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// PagerOptions controls how ToPager hands off long output.
type PagerOptions struct {
	// NoPager forces direct printing (--no-pager flag)
	NoPager bool
}

// ToPager shows content through the user's pager when it would scroll past
// the visible terminal. Short content, non-TTY stdout, and --no-pager all
// fall back to a plain print.
func ToPager(content string, opts PagerOptions) error {
	if opts.NoPager || os.Getenv("DGA_NO_PAGER") != "" {
		fmt.Print(content)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Print(content)
		return nil
	}

	if _, rows, err := term.GetSize(fd); err == nil && rows > 0 {
		// leave one row for the shell prompt
		if lineCount(content) <= rows-1 {
			fmt.Print(content)
			return nil
		}
	}

	name, args := pagerCommand()
	if name == "" {
		fmt.Print(content)
		return nil
	}

	pager := exec.Command(name, args...)
	pager.Stdin = strings.NewReader(content)
	pager.Stdout = os.Stdout
	pager.Stderr = os.Stderr
	if os.Getenv("LESS") == "" {
		// -R keeps ANSI colors, -F quits when one screen suffices,
		// -X skips the screen clear on exit
		pager.Env = append(os.Environ(), "LESS=-RFX")
	}
	return pager.Run()
}

// pagerCommand resolves the pager binary and its arguments, preferring
// DGA_PAGER over PAGER and falling back to less.
func pagerCommand() (string, []string) {
	raw := os.Getenv("DGA_PAGER")
	if raw == "" {
		raw = os.Getenv("PAGER")
	}
	if raw == "" {
		raw = "less"
	}
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
