package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/commalg/dgares/internal/ui"
)

// Help output recoloring. Cobra's layout is kept as-is; these rules only
// restyle the pieces it prints: group headers, section headers, command
// rows, and flag rows.
var (
	groupHeaderRE = regexp.MustCompile(`^[A-Z][A-Za-z &]+:\s*$`)
	sectionRE     = regexp.MustCompile(`^(Examples|Flags|Usage|Global Flags|Aliases|Available Commands):`)
	commandRowRE  = regexp.MustCompile(`^(  )([a-z][a-z0-9]*(?:-[a-z0-9]+)*)(\s{2,})(.*)$`)
	flagRowRE     = regexp.MustCompile(`^(\s+)(-\w,\s+--[\w-]+|--[\w-]+)(\s+)(string|int|uints|bool)?(\s*.*)$`)
	cmdRefRE      = regexp.MustCompile(`'([a-z][a-z0-9 -]+)'`)
	defaultRE     = regexp.MustCompile(`\(default[^)]*\)`)
)

// colorizedHelpFunc replaces Cobra's help func, printing the same text
// with the group and section structure colored.
func colorizedHelpFunc(cmd *cobra.Command, args []string) {
	var b strings.Builder
	if cmd.Long != "" {
		b.WriteString(cmd.Long)
		b.WriteString("\n\n")
	} else if cmd.Short != "" {
		b.WriteString(cmd.Short)
		b.WriteString("\n\n")
	}
	b.WriteString(cmd.UsageString())
	fmt.Print(colorizeHelp(b.String()))
}

// colorizeHelp restyles help text line by line. The first matching rule
// wins, so standalone group headers take precedence over the section
// prefixes they would also match.
func colorizeHelp(help string) string {
	lines := strings.Split(help, "\n")
	for i, line := range lines {
		switch {
		case groupHeaderRE.MatchString(line):
			lines[i] = ui.RenderAccent(strings.TrimSpace(line))
		case sectionRE.MatchString(line):
			lines[i] = sectionRE.ReplaceAllStringFunc(line, ui.RenderAccent)
		case commandRowRE.MatchString(line):
			lines[i] = styleCommandRow(line)
		case flagRowRE.MatchString(line):
			lines[i] = styleFlagRow(line)
		}
	}
	return strings.Join(lines, "\n")
}

// styleCommandRow colors the command name in a listing row and any
// quoted 'dga ...' references inside its description.
func styleCommandRow(line string) string {
	m := commandRowRE.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	desc := cmdRefRE.ReplaceAllStringFunc(m[4], func(ref string) string {
		return "'" + ui.RenderCommand(ref[1:len(ref)-1]) + "'"
	})
	return m[1] + ui.RenderCommand(m[2]) + m[3] + desc
}

// styleFlagRow colors the flag spelling, mutes the value type, and mutes
// "(default ...)" annotations in the description.
func styleFlagRow(line string) string {
	m := flagRowRE.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	desc := defaultRE.ReplaceAllStringFunc(m[5], ui.RenderMuted)
	if m[4] != "" {
		return m[1] + ui.RenderCommand(m[2]) + m[3] + ui.RenderMuted(m[4]) + desc
	}
	return m[1] + ui.RenderCommand(m[2]) + m[3] + desc
}

func init() {
	rootCmd.SetHelpFunc(colorizedHelpFunc)
}
