package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/views/cuisines"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/views/posts"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/views/terms"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// chromeHeight is the number of lines used by the title and tab bar.
const chromeHeight = 3

// App is the dashboard application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	termsView    *terms.View
	cuisinesView *cuisines.View
	searchView   *search.View
	postsView    *posts.View

	// tab is the active tab.
	tab messages.Tab

	// loaded records which tabs have issued their first load.
	loaded map[messages.Tab]bool

	// help shows the keybinding overlay.
	help bool

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the dashboard with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingTrendService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		termsView: terms.NewView(s, km, ports.Trends, domain.TrendOptions{
			Days: opts.TrendDays, Limit: opts.TrendLimit,
		}),
		cuisinesView: cuisines.NewView(s, km, ports.Trends, domain.TrendOptions{
			Days: opts.TrendDays, Limit: opts.CuisineLimit,
		}),
		searchView: search.NewView(s, km, ports.Search, domain.SearchOptions{
			Days: opts.SearchDays, Limit: opts.SearchLimit,
		}),
		postsView: posts.NewView(s, km, ports.Posts, opts.PostLimit),
		tab:       messages.TabTerms,
		loaded:    map[messages.Tab]bool{messages.TabTerms: true},
	}, nil
}

// WithContext sets the context used for every service call.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.termsView.WithContext(ctx)
	a.cuisinesView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.postsView.WithContext(ctx)
	return a
}

// Init implements tea.Model. The terms tab loads immediately;
// other tabs load the first time they are opened.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("foodtrend"),
		a.termsView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.TabChanged:
		return a, a.switchTo(msg.Tab)

	case messages.TermTrendsLoaded:
		a.termsView, cmd = a.termsView.Update(msg)
		return a, cmd

	case messages.CuisineTrendsLoaded:
		a.cuisinesView, cmd = a.cuisinesView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.PostsLoaded, messages.TagsLoaded:
		a.postsView, cmd = a.postsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	if a.tab == messages.TabSearch {
		a.searchView, cmd = a.searchView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return a, tea.Quit
	}

	if a.help {
		if keymap.Matches(k, a.keymap.Help) || keymap.Matches(k, a.keymap.Back) {
			a.help = false
		}
		return a, nil
	}

	switch {
	case keymap.Matches(k, a.keymap.NextTab):
		return a, a.switchTo(a.tab.Next())
	case keymap.Matches(k, a.keymap.PrevTab):
		return a, a.switchTo(a.tab.Prev())
	}

	// The query input receives every other key while it has focus.
	typing := a.tab == messages.TabSearch && a.searchView.InputFocused()
	if !typing {
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Help):
			a.help = true
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.tab {
	case messages.TabTerms:
		a.termsView, cmd = a.termsView.Update(msg)
	case messages.TabCuisines:
		a.cuisinesView, cmd = a.cuisinesView.Update(msg)
	case messages.TabSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.TabPosts:
		a.postsView, cmd = a.postsView.Update(msg)
	}
	return a, cmd
}

// switchTo activates a tab, issuing its first load when needed.
func (a *App) switchTo(tab messages.Tab) tea.Cmd {
	a.tab = tab
	if a.loaded[tab] {
		return nil
	}
	a.loaded[tab] = true

	switch tab {
	case messages.TabTerms:
		return a.termsView.Init()
	case messages.TabCuisines:
		return a.cuisinesView.Init()
	case messages.TabSearch:
		return a.searchView.Init()
	case messages.TabPosts:
		return a.postsView.Init()
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("foodtrend"),
		a.renderTabs(),
		"",
	)
	if a.help {
		return header + "\n" + a.renderHelp()
	}

	var body string
	switch a.tab {
	case messages.TabTerms:
		body = a.termsView.View()
	case messages.TabCuisines:
		body = a.cuisinesView.View()
	case messages.TabSearch:
		body = a.searchView.View()
	case messages.TabPosts:
		body = a.postsView.View()
	}
	if a.err != nil {
		body = a.styles.Error.Render("Error: "+a.err.Error()) + "\n" + body
	}
	return header + "\n" + body
}

func (a *App) renderTabs() string {
	tabs := messages.Tabs()
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if t == a.tab {
			parts[i] = a.styles.ActiveTab.Render(t.String())
			continue
		}
		parts[i] = a.styles.Tab.Render(t.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderHelp() string {
	var lines []string
	for _, group := range a.keymap.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-12s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, a.styles.Help.Render("[esc] close help"))
	return a.styles.Subtitle.Render("Help") + "\n\n" + strings.Join(lines, "\n")
}

// Run starts the dashboard and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions and resizes every tab.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	inner := height - chromeHeight
	a.termsView.SetDimensions(width, inner)
	a.cuisinesView.SetDimensions(width, inner)
	a.searchView.SetDimensions(width, inner)
	a.postsView.SetDimensions(width, inner)
}

// Tab returns the active tab.
func (a *App) Tab() messages.Tab {
	return a.tab
}

// HelpVisible reports whether the help overlay is shown.
func (a *App) HelpVisible() bool {
	return a.help
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}
