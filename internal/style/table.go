package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column describes one table column: header text, fixed width, and
// optional alignment and style.
type Column struct {
	Name  string
	Width int
	Align Alignment
	Style lipgloss.Style
}

// Alignment positions cell text within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Table renders fixed-width columnar output for listings.
type Table struct {
	columns     []Column
	rows        [][]string
	headerSep   bool
	indent      string
	headerStyle lipgloss.Style
}

// NewTable creates a table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{
		columns:     columns,
		headerSep:   true,
		indent:      "  ",
		headerStyle: Bold,
	}
}

// SetIndent overrides the two-space left margin.
func (t *Table) SetIndent(indent string) *Table {
	t.indent = indent
	return t
}

// SetHeaderSeparator enables or disables the line under the header.
func (t *Table) SetHeaderSeparator(enabled bool) *Table {
	t.headerSep = enabled
	return t
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(values ...string) *Table {
	t.rows = append(t.rows, values)
	return t
}

// Render lays out the header, separator, and rows as one string.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(t.indent)
	for i, col := range t.columns {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(pad(t.headerStyle.Render(col.Name), col.Width, col.Align))
	}
	b.WriteByte('\n')

	if t.headerSep {
		b.WriteString(t.indent)
		b.WriteString(Dim.Render(strings.Repeat("─", t.totalWidth())))
		b.WriteByte('\n')
	}

	for _, row := range t.rows {
		b.WriteString(t.indent)
		for i, col := range t.columns {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(pad(t.cell(row, i), col.Width, col.Align))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// totalWidth is the printed width of one row: column widths plus the
// single-space gaps between them.
func (t *Table) totalWidth() int {
	w := len(t.columns) - 1
	for _, col := range t.columns {
		w += col.Width
	}
	return w
}

// cell prepares the row value for column i: oversized plain text is
// clipped, then the column style applies when one is set.
func (t *Table) cell(row []string, i int) string {
	col := t.columns[i]
	val := ""
	if i < len(row) {
		val = row[i]
	}
	if plain := stripAnsi(val); len(plain) > col.Width {
		val = clip(plain, col.Width)
	}
	if col.Style.Value() != "" {
		val = col.Style.Render(val)
	}
	return val
}

// pad aligns cell within width. Width counts visible characters, so
// pre-styled cells keep their escapes without skewing the layout.
func pad(cell string, width int, align Alignment) string {
	gap := width - len(stripAnsi(cell))
	if gap <= 0 {
		return cell
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

// clip shortens plain text to width, marking the cut with an ellipsis
// when there is room for one.
func clip(plain string, width int) string {
	if width <= 3 {
		return plain[:width]
	}
	return plain[:width-3] + "..."
}

// stripAnsi drops SGR escape sequences so widths count visible characters.
func stripAnsi(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\x1b' {
			b.WriteByte(s[i])
			continue
		}
		for i < len(s) && s[i] != 'm' {
			i++
		}
	}
	return b.String()
}

// SuggestionBox renders an error message with candidate values underneath,
// the shape used when a run prefix matches more than one run.
func SuggestionBox(message string, suggestions []string, hint string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s %s\n", ErrorPrefix, message)

	if len(suggestions) > 0 {
		b.WriteString("\n  Did you mean?\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "    • %s\n", s)
		}
	}

	if hint != "" {
		fmt.Fprintf(&b, "\n  %s\n", Dim.Render(hint))
	}

	return b.String()
}
