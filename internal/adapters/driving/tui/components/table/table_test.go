package table

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columns() []Column {
	return []Column{
		{Title: "Term", Width: 12},
		{Title: "Score", Width: 8, Right: true},
	}
}

func rows(n int) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = []string{strings.Repeat("x", i+1), "1.0"}
	}
	return out
}

func TestNew(t *testing.T) {
	tbl := New(nil, columns())

	require.NotNil(t, tbl)
	assert.NotNil(t, tbl.styles)
	assert.Equal(t, 0, tbl.Count())
	assert.Equal(t, 10, tbl.Height())
}

func TestTable_ViewEmpty(t *testing.T) {
	tbl := New(nil, columns())
	tbl.SetEmptyText("No trending terms")

	view := tbl.View()

	assert.Contains(t, view, "Term")
	assert.Contains(t, view, "Score")
	assert.Contains(t, view, "No trending terms")
}

func TestTable_ViewRows(t *testing.T) {
	tbl := New(nil, columns())
	tbl.SetRows([][]string{{"ramen", "3.5"}, {"birria", "2.25"}})

	view := tbl.View()

	assert.Contains(t, view, "> ramen")
	assert.Contains(t, view, "birria")
	assert.Contains(t, view, "2.25")
}

func TestTable_Navigation(t *testing.T) {
	tbl := New(nil, columns())
	tbl.SetRows(rows(3))

	tbl.MoveUp()
	assert.Equal(t, 0, tbl.Selected())

	tbl.MoveDown()
	tbl.MoveDown()
	tbl.MoveDown()
	assert.Equal(t, 2, tbl.Selected())

	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, tbl.Selected())

	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, tbl.Selected())

	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, tbl.Selected())

	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 2, tbl.Selected())
}

func TestTable_SetRowsResetsSelection(t *testing.T) {
	tbl := New(nil, columns())
	tbl.SetRows(rows(3))
	tbl.SetSelected(2)

	tbl.SetRows(rows(2))

	assert.Equal(t, 0, tbl.Selected())
}

func TestTable_SetSelectedOutOfRange(t *testing.T) {
	tbl := New(nil, columns())
	tbl.SetRows(rows(2))

	tbl.SetSelected(5)
	assert.Equal(t, 0, tbl.Selected())

	tbl.SetSelected(-1)
	assert.Equal(t, 0, tbl.Selected())
}

func TestTable_ScrollsToSelection(t *testing.T) {
	tbl := New(nil, columns())
	tbl.SetHeight(3)
	tbl.SetRows([][]string{{"a"}, {"b"}, {"c"}, {"d"}})
	tbl.SetSelected(3)

	view := tbl.View()

	assert.Contains(t, view, "> d")
	assert.NotContains(t, view, "  a ")
	assert.Len(t, strings.Split(view, "\n"), 3)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ramen", 10, "ramen"},
		{"ramen", 5, "ramen"},
		{"ramen noodles", 8, "ramen..."},
		{"ramen", 2, "ra"},
		{"ramen", 0, "ramen"},
		{"crème brûlée", 6, "crè..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), tt.in)
	}
}
