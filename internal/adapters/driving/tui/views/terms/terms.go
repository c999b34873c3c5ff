// Package terms provides the trending terms tab for the TUI.
package terms

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

var columns = []table.Column{
	{Title: "#", Width: 3, Right: true},
	{Title: "Term", Width: 28},
	{Title: "Score", Width: 9, Right: true},
	{Title: "Mentions", Width: 8, Right: true},
	{Title: "24h", Width: 5, Right: true},
	{Title: "Prev", Width: 5, Right: true},
	{Title: "Spike", Width: 6, Right: true},
}

// View ranks active terms by decay-weighted popularity.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	table     *table.Table
	statusbar *status.Bar

	service driving.TrendService
	opts    domain.TrendOptions
	ctx     context.Context

	trends []domain.TermTrend
	err    error
	width  int
	height int
}

// NewView creates the terms tab. Zero options fall back to the ranker defaults.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.TrendService, opts domain.TrendOptions) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	t := table.New(s, columns)
	t.SetEmptyText("No trending terms in this window. Run `foodtrend match` after ingesting posts.")

	return &View{
		styles:    s,
		keymap:    km,
		table:     t,
		statusbar: status.NewBar(s, km),
		service:   service,
		opts:      opts,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the ranking.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load fetches the ranking in the background.
func (v *View) Load() tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	ctx, service, opts := v.ctx, v.service, v.opts
	return func() tea.Msg {
		trends, err := service.TrendingTerms(ctx, opts)
		return messages.TermTrendsLoaded{Trends: trends, Err: err}
	}
}

// Update handles messages for the terms tab.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.TermTrendsLoaded:
		v.setTrends(msg)
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Refresh) {
			return v, v.Load()
		}
		v.table, _ = v.table.Update(msg)
	}
	return v, nil
}

func (v *View) setTrends(msg messages.TermTrendsLoaded) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.Fail(msg.Err)
		return
	}
	v.err = nil
	v.trends = msg.Trends

	rows := make([][]string, len(msg.Trends))
	for i, tr := range msg.Trends {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			tr.Term,
			strconv.FormatFloat(tr.TrendScore, 'f', 4, 64),
			strconv.Itoa(tr.Mentions),
			strconv.Itoa(tr.Recent24h),
			strconv.Itoa(tr.Prev24h),
			strconv.FormatFloat(tr.Spike, 'f', 2, 64),
		}
	}
	v.table.SetRows(rows)
	v.statusbar.SetCount(len(rows), "terms")
	v.statusbar.SetMessage(fmt.Sprintf("last %d days", v.days()))
}

func (v *View) days() int {
	if v.opts.Days > 0 {
		return v.opts.Days
	}
	return domain.DefaultAppSettings().Trends.Days
}

// View renders the tab.
func (v *View) View() string {
	sections := []string{
		v.styles.Subtitle.Render(fmt.Sprintf("Trending terms · last %d days", v.days())),
		"",
		v.table.View(),
	}
	if sel := v.Selected(); sel != nil && sel.Spike > 1 {
		sections = append(sections, "", v.styles.Rising.Render(
			fmt.Sprintf("%s is rising: %d mentions in the last 24h vs %d the day before",
				sel.Term, sel.Recent24h, sel.Prev24h)))
	}
	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.table.SetHeight(height - 8)
	v.statusbar.SetWidth(width)
}

// Trends returns the loaded ranking.
func (v *View) Trends() []domain.TermTrend {
	return v.trends
}

// Selected returns the highlighted row, or nil when the table is empty.
func (v *View) Selected() *domain.TermTrend {
	i := v.table.Selected()
	if i < 0 || i >= len(v.trends) {
		return nil
	}
	return &v.trends[i]
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
