// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/styles"
)

// queryCharLimit bounds the query length accepted by the input.
const queryCharLimit = 256

// QueryInput wraps a bubbles textinput for post search queries.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewQueryInput creates a focused query input with the given label.
func NewQueryInput(s *styles.Styles, label string) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if label == "" {
		label = "Search"
	}

	ti := textinput.New()
	ti.Placeholder = "birria tacos, gochujang..."
	ti.Focus()
	ti.CharLimit = queryCharLimit
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the label and input box.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(q.label + ": ")
	box := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the raw input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// Query returns the input value with surrounding whitespace removed.
func (q *QueryInput) Query() string {
	return strings.TrimSpace(q.textinput.Value())
}

// SetValue sets the input value.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (q *QueryInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus from the input.
func (q *QueryInput) Blur() {
	q.textinput.Blur()
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	inner := width - len(q.label) - 8
	if inner < 20 {
		inner = 20
	}
	q.textinput.Width = inner
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}
