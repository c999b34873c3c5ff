package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodtrend/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

func newTestApp(t *testing.T, opts Options) (*App, *Ports) {
	t.Helper()
	ports := newTestPorts()
	app, err := NewApp(ports, opts)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, ports
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.TabTerms, app.Tab())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Search: &mockSearchService{}, Posts: &mockPostService{}}, Options{})

	assert.ErrorIs(t, err, ErrMissingTrendService)
	assert.Nil(t, app)
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil, Options{})

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "foodtrend")
}

func TestApp_View_ShowsTabs(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	view := app.View()

	for _, tab := range messages.Tabs() {
		assert.Contains(t, view, tab.String())
	}
	assert.Contains(t, view, "Trending terms")
}

func TestApp_TermsLoadedAndRefreshUsesOptions(t *testing.T) {
	app, ports := newTestApp(t, Options{TrendDays: 3, TrendLimit: 5})
	trends := ports.Trends.(*mockTrendService)

	_, cmd := app.Update(runes("r"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, 1, trends.termCalls)
	assert.Equal(t, 3, trends.termOpts.Days)
	assert.Equal(t, 5, trends.termOpts.Limit)
	assert.Contains(t, app.View(), "birria")
}

func TestApp_TabLoadsCuisinesOnce(t *testing.T) {
	app, ports := newTestApp(t, Options{})
	trends := ports.Trends.(*mockTrendService)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, messages.TabCuisines, app.Tab())
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, 1, trends.cuisineCalls)
	assert.Equal(t, 12, trends.cuisineOpts.Limit)
	assert.Contains(t, app.View(), "Mexican")

	app.Update(messages.TabChanged{Tab: messages.TabTerms})
	_, cmd = app.Update(messages.TabChanged{Tab: messages.TabCuisines})
	assert.Nil(t, cmd)
}

func TestApp_ShiftTabWraps(t *testing.T) {
	app, ports := newTestApp(t, Options{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})

	assert.Equal(t, messages.TabPosts, app.Tab())
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, 1, ports.Posts.(*mockPostService).recentCalls)
	assert.Contains(t, app.View(), "Gochujang wings")
}

func TestApp_LoadedMessagesRouteToInactiveTabs(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	app.Update(messages.CuisineTrendsLoaded{Trends: []domain.CuisineTrend{{Origin: domain.OriginKorean, Label: "Korean"}}})

	assert.Equal(t, messages.TabTerms, app.Tab())
	assert.Len(t, app.cuisinesView.Trends(), 1)
}

func TestApp_SearchTabTypingDoesNotQuit(t *testing.T) {
	app, ports := newTestApp(t, Options{})
	app.Update(messages.TabChanged{Tab: messages.TabSearch})

	for _, r := range "qbirria" {
		app.Update(runes(string(r)))
	}
	assert.Equal(t, "qbirria", app.searchView.Query())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, []string{"qbirria"}, ports.Search.(*mockSearchService).queries)
	assert.Len(t, app.searchView.Results(), 1)
	assert.False(t, app.searchView.InputFocused())

	_, cmd = app.Update(runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestApp_QuitKeys(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	_, cmd := app.Update(runes("q"))
	assert.True(t, isQuit(cmd))

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))

	_, cmd = app.Update(messages.Quit{})
	assert.True(t, isQuit(cmd))
}

func TestApp_HelpOverlay(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	app.Update(runes("?"))
	require.True(t, app.HelpVisible())
	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "next tab")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Equal(t, messages.TabTerms, app.Tab())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.HelpVisible())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	app.Update(messages.ErrorOccurred{Err: errors.New("store unavailable")})

	assert.EqualError(t, app.Err(), "store unavailable")
	assert.Contains(t, app.View(), "Error: store unavailable")
}
