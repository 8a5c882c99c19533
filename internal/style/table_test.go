package style

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable(
		Column{Name: "RUN", Width: 8},
		Column{Name: "EQNS", Width: 6, Align: AlignRight},
		Column{Name: "STATUS", Width: 10},
	)
	table.AddRow("0a1b2c3d", "1,024", "reduced")
	table.AddRow("9f8e7d6c", "96", "built")

	out := stripAnsi(table.Render())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}

	if len(lines) != 4 {
		t.Fatalf("expected header + separator + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "  RUN        EQNS STATUS" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("separator line missing, got %q", lines[1])
	}
	if lines[2] != "  0a1b2c3d  1,024 reduced" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "  9f8e7d6c     96 built" {
		t.Errorf("right-aligned row = %q", lines[3])
	}
}

func TestTableNoSeparator(t *testing.T) {
	table := NewTable(Column{Name: "A", Width: 3}).SetHeaderSeparator(false)
	table.AddRow("x")

	out := stripAnsi(table.Render())
	if strings.Contains(out, "─") {
		t.Errorf("separator should be disabled, got %q", out)
	}
}

func TestTableIndent(t *testing.T) {
	table := NewTable(Column{Name: "A", Width: 3}).SetIndent("")
	table.AddRow("x")

	out := stripAnsi(table.Render())
	if strings.HasPrefix(out, " ") {
		t.Errorf("indent should be empty, got %q", out)
	}
}

func TestTableTruncatesLongValues(t *testing.T) {
	table := NewTable(Column{Name: "KEY", Width: 10}).SetHeaderSeparator(false)
	table.AddRow("x0^2*y3*e(1,2;0,2,4)")

	out := stripAnsi(table.Render())
	if !strings.Contains(out, "x0^2*y3...") {
		t.Errorf("expected truncated value with ellipsis, got %q", out)
	}
}

func TestTableShortRowsPadded(t *testing.T) {
	table := NewTable(
		Column{Name: "A", Width: 4},
		Column{Name: "B", Width: 4},
	).SetHeaderSeparator(false)
	table.AddRow("x") // second column missing

	out := table.Render()
	if !strings.Contains(out, "x") {
		t.Errorf("row value lost: %q", out)
	}
}

func TestPadIgnoresAnsiCodes(t *testing.T) {
	// Padding must count visible characters, not escape bytes.
	table := NewTable(
		Column{Name: "S", Width: 6},
		Column{Name: "N", Width: 3},
	).SetHeaderSeparator(false)
	table.AddRow("\x1b[32mok\x1b[0m", "1")

	out := table.Render()
	line := strings.Split(out, "\n")[1]
	if !strings.Contains(stripAnsi(line), "ok     1") {
		t.Errorf("ANSI-styled cell padded wrong: %q", stripAnsi(line))
	}
}

func TestStripAnsi(t *testing.T) {
	in := "\x1b[1m\x1b[32mpass\x1b[0m and plain"
	if got := stripAnsi(in); got != "pass and plain" {
		t.Errorf("stripAnsi() = %q", got)
	}
}

func TestSuggestionBox(t *testing.T) {
	out := stripAnsi(SuggestionBox(
		"ambiguous run prefix \"0a\"",
		[]string{"0a1b2c3d", "0a9f8e7d"},
		"use a longer prefix",
	))

	for _, want := range []string{"ambiguous run prefix", "Did you mean?", "0a1b2c3d", "0a9f8e7d", "use a longer prefix"} {
		if !strings.Contains(out, want) {
			t.Errorf("SuggestionBox() missing %q in %q", want, out)
		}
	}
}
