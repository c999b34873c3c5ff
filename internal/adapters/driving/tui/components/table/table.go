// Package table provides a navigable column table for the TUI.
package table

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/styles"
)

// Column describes one table column.
type Column struct {
	Title string
	Width int
	// Right aligns numeric columns.
	Right bool
}

// Table renders rows of pre-formatted cells with a selection cursor.
type Table struct {
	columns  []Column
	rows     [][]string
	selected int
	styles   *styles.Styles
	empty    string
	height   int
}

// New creates a table with the given columns.
func New(s *styles.Styles, columns []Column) *Table {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Table{
		columns: columns,
		styles:  s,
		empty:   "No rows",
		height:  10,
	}
}

// Update handles selection keys.
func (t *Table) Update(msg tea.Msg) (*Table, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			t.MoveUp()
		case "down", "j":
			t.MoveDown()
		case "home", "g":
			t.selected = 0
		case "end", "G":
			if len(t.rows) > 0 {
				t.selected = len(t.rows) - 1
			}
		}
	}
	return t, nil
}

// View renders the header and the visible rows.
func (t *Table) View() string {
	header := t.styles.Header.Render("  " + t.line(t.titles()))
	if len(t.rows) == 0 {
		return header + "\n" + t.styles.Muted.Render("  "+t.empty)
	}

	visible := t.height - 1
	if visible < 1 {
		visible = 1
	}
	start := 0
	if t.selected >= visible {
		start = t.selected - visible + 1
	}
	end := start + visible
	if end > len(t.rows) {
		end = len(t.rows)
	}

	lines := make([]string, 0, end-start+1)
	lines = append(lines, header)
	for i := start; i < end; i++ {
		text := t.line(t.rows[i])
		if i == t.selected {
			lines = append(lines, t.styles.Selected.Render("> "+text))
			continue
		}
		lines = append(lines, t.styles.Normal.Render("  "+text))
	}
	return strings.Join(lines, "\n")
}

func (t *Table) titles() []string {
	titles := make([]string, len(t.columns))
	for i, c := range t.columns {
		titles[i] = c.Title
	}
	return titles
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = Truncate(cells[i], c.Width)
		}
		if c.Right {
			parts[i] = fmt.Sprintf("%*s", c.Width, cell)
		} else {
			parts[i] = fmt.Sprintf("%-*s", c.Width, cell)
		}
	}
	return strings.Join(parts, " ")
}

// Truncate shortens s to at most width runes, ending in "..." when cut.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// SetRows replaces the rows and resets the selection.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.selected = 0
}

// Rows returns the current rows.
func (t *Table) Rows() [][]string {
	return t.rows
}

// SetEmptyText sets the text shown when there are no rows.
func (t *Table) SetEmptyText(text string) {
	t.empty = text
}

// Selected returns the index of the selected row.
func (t *Table) Selected() int {
	return t.selected
}

// SetSelected sets the selected index when it is in range.
func (t *Table) SetSelected(index int) {
	if index >= 0 && index < len(t.rows) {
		t.selected = index
	}
}

// MoveUp moves selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
	}
}

// MoveDown moves selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
	}
}

// SetHeight sets the number of lines the table may use, header included.
func (t *Table) SetHeight(height int) {
	t.height = height
}

// Height returns the current height.
func (t *Table) Height() int {
	return t.height
}

// Count returns the number of rows.
func (t *Table) Count() int {
	return len(t.rows)
}
