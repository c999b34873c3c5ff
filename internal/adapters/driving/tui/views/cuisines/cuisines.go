// Package cuisines provides the trending cuisines tab for the TUI.
package cuisines

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

// DefaultLimit is the number of cuisines shown when no limit is set.
const DefaultLimit = 12

var columns = []table.Column{
	{Title: "#", Width: 3, Right: true},
	{Title: "Cuisine", Width: 16},
	{Title: "Score", Width: 9, Right: true},
	{Title: "Mentions", Width: 8, Right: true},
	{Title: "24h", Width: 5, Right: true},
	{Title: "Spike", Width: 6, Right: true},
	{Title: "Terms", Width: 5, Right: true},
	{Title: "Subs", Width: 4, Right: true},
}

// View ranks cultural origins of the active vocabulary.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	table     *table.Table
	statusbar *status.Bar

	service driving.TrendService
	opts    domain.TrendOptions
	ctx     context.Context

	trends []domain.CuisineTrend
	err    error
}

// NewView creates the cuisines tab. A zero limit shows DefaultLimit rows.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.TrendService, opts domain.TrendOptions) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if opts.Limit == 0 {
		opts.Limit = DefaultLimit
	}

	t := table.New(s, columns)
	t.SetEmptyText("No cuisine mentions in this window.")

	return &View{
		styles:    s,
		keymap:    km,
		table:     t,
		statusbar: status.NewBar(s, km),
		service:   service,
		opts:      opts,
		ctx:       context.Background(),
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
		trends, err := service.TrendingCuisines(ctx, opts)
		return messages.CuisineTrendsLoaded{Trends: trends, Err: err}
	}
}

// Update handles messages for the cuisines tab.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.CuisineTrendsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.Fail(msg.Err)
			return v, nil
		}
		v.err = nil
		v.trends = msg.Trends
		v.table.SetRows(rowsFor(msg.Trends))
		v.statusbar.SetCount(len(msg.Trends), "cuisines")
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Refresh) {
			return v, v.Load()
		}
		v.table, _ = v.table.Update(msg)
	}
	return v, nil
}

func rowsFor(trends []domain.CuisineTrend) [][]string {
	rows := make([][]string, len(trends))
	for i, c := range trends {
		label := c.Label
		if label == "" {
			label = c.Origin.Label()
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			label,
			strconv.FormatFloat(c.TrendScore, 'f', 4, 64),
			strconv.Itoa(c.Mentions),
			strconv.Itoa(c.Recent24h),
			strconv.FormatFloat(c.Spike, 'f', 2, 64),
			strconv.Itoa(c.UniqueTerms),
			strconv.Itoa(c.SubredditSpread),
		}
	}
	return rows
}

// View renders the tab.
func (v *View) View() string {
	days := v.opts.Days
	if days <= 0 {
		days = domain.DefaultAppSettings().Trends.Days
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Subtitle.Render(fmt.Sprintf("Trending cuisines · last %d days", days)),
		"",
		v.table.View(),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.table.SetHeight(height - 6)
	v.statusbar.SetWidth(width)
}

// Trends returns the loaded ranking.
func (v *View) Trends() []domain.CuisineTrend {
	return v.trends
}

// Options returns the options passed to the ranker.
func (v *View) Options() domain.TrendOptions {
	return v.opts
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
