// Package search provides the post search tab for the TUI.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

// previewLength caps the body preview in the detail pane.
const previewLength = 280

var columns = []table.Column{
	{Title: "Rank", Width: 9, Right: true},
	{Title: "Title", Width: 40},
	{Title: "Subreddit", Width: 12},
	{Title: "Posted", Width: 10},
	{Title: "Hits", Width: 5, Right: true},
}

// View is the query input, ranked results and a preview of the selected post.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	table     *table.Table
	statusbar *status.Bar

	service driving.SearchService
	opts    domain.SearchOptions
	ctx     context.Context

	results    []domain.SearchResult
	lastQuery  string
	err        error
	focusInput bool
}

// NewView creates the search tab. Zero options fall back to the search defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.SearchService, opts domain.SearchOptions) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	t := table.New(s, columns)
	t.SetEmptyText("Type a query and press enter.")
	bar := status.NewBar(s, km)
	bar.SetBindings(km.InputHelp())

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s, "Search"),
		table:      t,
		statusbar:  bar,
		service:    service,
		opts:       opts,
		ctx:        context.Background(),
		focusInput: true,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search tab.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.SearchCompleted:
		v.handleCompleted(msg)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		switch {
		case keymap.Matches(msg.String(), v.keymap.Search):
			return v, v.submit()
		case keymap.Matches(msg.String(), v.keymap.Back):
			if len(v.results) > 0 {
				v.blurInput()
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	if keymap.Matches(msg.String(), v.keymap.Focus) {
		v.focusInput = true
		v.statusbar.SetBindings(v.keymap.InputHelp())
		return v, v.input.Focus()
	}
	v.table, _ = v.table.Update(msg)
	return v, nil
}

// submit runs the query in the background. Blank queries are ignored.
func (v *View) submit() tea.Cmd {
	query := v.input.Query()
	if query == "" {
		return nil
	}
	v.statusbar.SetState(status.StateLoading)
	ctx, service, opts := v.ctx, v.service, v.opts
	return func() tea.Msg {
		results, err := service.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return
	}
	v.err = nil
	v.lastQuery = msg.Query
	v.results = msg.Results

	rows := make([][]string, len(msg.Results))
	for i, r := range msg.Results {
		title := r.Document.Title
		if title == "" {
			title = "(untitled)"
		}
		rows[i] = []string{
			strconv.FormatFloat(r.RankScore, 'f', 6, 64),
			title,
			r.Document.Source,
			r.Document.CreatedAt.UTC().Format("2006-01-02"),
			fmt.Sprintf("%d/%d", r.TitleHits, r.BodyHits),
		}
	}
	v.table.SetRows(rows)
	v.table.SetEmptyText(fmt.Sprintf("No posts match %q.", msg.Query))
	v.statusbar.SetCount(len(rows), "posts")
	if len(rows) > 0 {
		v.blurInput()
	}
}

func (v *View) blurInput() {
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetBindings(v.keymap.ResultsHelp())
}

// View renders the tab.
func (v *View) View() string {
	sections := []string{v.input.View(), "", v.table.View()}
	if r := v.SelectedResult(); r != nil && !v.focusInput {
		sections = append(sections, "", v.renderPreview(r))
	}
	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderPreview(r *domain.SearchResult) string {
	d := r.Document
	meta := fmt.Sprintf("r/%s · %s · %d points · %d comments",
		d.Source, d.CreatedAt.UTC().Format("2006-01-02 15:04"), d.Score, d.Comments)
	body := strings.Join(strings.Fields(d.Body), " ")
	body = table.Truncate(body, previewLength)
	lines := []string{v.styles.Title.Render(d.Title), v.styles.Muted.Render(meta)}
	if body != "" {
		lines = append(lines, "", v.styles.Normal.Render(body))
	}
	return v.styles.Border.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.input.SetWidth(width)
	v.table.SetHeight(height - 16)
	v.statusbar.SetWidth(width)
}

// Query returns the current input value.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input value.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// LastQuery returns the query of the last completed search.
func (v *View) LastQuery() string {
	return v.lastQuery
}

// Results returns the last search results.
func (v *View) Results() []domain.SearchResult {
	return v.results
}

// SelectedResult returns the highlighted result, or nil when there is none.
func (v *View) SelectedResult() *domain.SearchResult {
	i := v.table.Selected()
	if i < 0 || i >= len(v.results) {
		return nil
	}
	return &v.results[i]
}

// InputFocused reports whether keystrokes go to the query input.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Err returns the last search error.
func (v *View) Err() error {
	return v.err
}
