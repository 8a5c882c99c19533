// Package explore provides a TUI for browsing an extracted equation system
// and its reduction.
package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/commalg/dgares/internal/equations"
	"github.com/commalg/dgares/internal/store"
)

// factorLabels letter the generating elements of an equation source.
var factorLabels = []string{"f", "g", "h"}

// Model is the bubbletea model for the explore TUI.
type Model struct {
	meta store.Meta
	sys  *equations.System
	red  *equations.Reduction // nil until the run is reduced

	rows       []int // equation indices surviving the filter
	cursor     int   // selection index into rows
	offset     int   // first visible list row
	affineOnly bool

	// UI state
	detail      viewport.Model
	detailFocus bool
	keys        KeyMap
	help        help.Model
	showHelp    bool
	width       int
	height      int
	ready       bool
}

// New creates an explore model over a loaded run. red may be nil when the
// run has not been reduced yet.
func New(meta store.Meta, sys *equations.System, red *equations.Reduction) Model {
	m := Model{
		meta:   meta,
		sys:    sys,
		red:    red,
		detail: viewport.New(0, 0),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.rebuildRows()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.resize()
			return m, nil

		case key.Matches(msg, m.keys.Focus):
			m.detailFocus = !m.detailFocus
			return m, nil

		case key.Matches(msg, m.keys.Affine):
			m.affineOnly = !m.affineOnly
			m.rebuildRows()
			m.refreshDetail()
			return m, nil
		}

		if m.detailFocus {
			// Detail pane owns the movement keys while focused.
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.listHeight())
		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.listHeight())
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
			m.clampScroll()
			m.refreshDetail()
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = len(m.rows) - 1
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.clampScroll()
			m.refreshDetail()
		}
		return m, nil
	}

	return m, nil
}

// moveCursor shifts the selection by delta, clamped to the filtered rows.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if max := len(m.rows) - 1; m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
	m.refreshDetail()
}

// clampScroll keeps the cursor inside the visible list window.
func (m *Model) clampScroll() {
	lh := m.listHeight()
	if lh <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+lh {
		m.offset = m.cursor - lh + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// rebuildRows recomputes the filtered equation indices and resets the
// selection.
func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	for i, eq := range m.sys.Equations {
		if m.affineOnly && !eq.IsAffine() {
			continue
		}
		m.rows = append(m.rows, i)
	}
	m.cursor = 0
	m.offset = 0
}

// selected returns the equation under the cursor, if any.
func (m Model) selected() (equations.Equation, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return equations.Equation{}, false
	}
	return m.sys.Equations[m.rows[m.cursor]], true
}

// resize recomputes pane dimensions after a window or layout change.
func (m *Model) resize() {
	dh := m.detailHeight()
	if dh < 1 {
		dh = 1
	}
	m.detail.Width = m.width
	m.detail.Height = dh
	m.clampScroll()
	m.refreshDetail()
}

// headerHeight is the fixed two header lines plus a blank spacer.
func (m Model) headerHeight() int { return 3 }

func (m Model) helpHeight() int {
	if m.showHelp {
		// full help renders one line per binding row plus a spacer
		return 5
	}
	return 2
}

// listHeight returns the number of visible equation rows.
func (m Model) listHeight() int {
	body := m.height - m.headerHeight() - m.helpHeight() - 1 // separator line
	if body < 2 {
		return 1
	}
	return body / 2
}

// detailHeight returns the height of the detail viewport.
func (m Model) detailHeight() int {
	body := m.height - m.headerHeight() - m.helpHeight() - 1
	if body < 2 {
		return 1
	}
	return body - body/2
}

// refreshDetail re-renders the detail pane for the current selection.
func (m *Model) refreshDetail() {
	eq, ok := m.selected()
	if !ok {
		m.detail.SetContent(dimStyle.Render("no equations match the filter"))
		return
	}
	m.detail.SetContent(m.renderDetail(eq))
	m.detail.GotoTop()
}

// renderDetail formats the full record of one equation.
func (m Model) renderDetail(eq equations.Equation) string {
	var b strings.Builder

	shape := "affine"
	if !eq.IsAffine() {
		shape = fmt.Sprintf("degree %d", eq.Poly.Degree())
	}
	fmt.Fprintf(&b, "%s  %s\n\n", headerStyle.Render(fmt.Sprintf("equation %d/%d", m.cursor+1, len(m.rows))), dimStyle.Render(shape))

	b.WriteString(wrap(eq.Key()+" = 0", m.detail.Width))
	b.WriteString("\n")

	src := eq.Source
	if src.Kind == "" && len(src.Factors) == 0 && src.BasisKey == "" {
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", dimStyle.Render("source:"), src.Kind)
	for i, f := range src.Factors {
		label := "·"
		if i < len(factorLabels) {
			label = factorLabels[i]
		}
		fmt.Fprintf(&b, "  %s  %s\n", accentStyle.Render(label), f)
	}
	if src.BasisKey != "" {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("at"), src.BasisKey)
	}

	return b.String()
}

// wrap breaks s into lines no longer than width bytes. Equation keys are
// ASCII except for the star and caret, so byte wrapping is close enough.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var b strings.Builder
	for len(s) > width {
		cut := strings.LastIndex(s[:width], " ")
		if cut <= 0 {
			cut = width
		}
		b.WriteString(s[:cut])
		b.WriteString("\n")
		s = strings.TrimLeft(s[cut:], " ")
	}
	b.WriteString(s)
	return b.String()
}
