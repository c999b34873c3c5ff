// Package posts provides the recent posts tab for the TUI.
package posts

import (
	"context"
	"strconv"
	"strings"

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

// DefaultLimit is the number of posts listed when no limit is set.
const DefaultLimit = 20

var columns = []table.Column{
	{Title: "Posted", Width: 16},
	{Title: "Subreddit", Width: 12},
	{Title: "Title", Width: 44},
	{Title: "Pts", Width: 5, Right: true},
	{Title: "Cmts", Width: 5, Right: true},
}

// View lists the newest posts with the terms matched in the selected one.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	table     *table.Table
	statusbar *status.Bar

	service driving.PostService
	limit   int
	ctx     context.Context

	posts []domain.Document
	// tags caches matched terms by document id.
	tags map[int64][]string
	err  error
}

// NewView creates the posts tab.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.PostService, limit int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	t := table.New(s, columns)
	t.SetEmptyText("No posts stored yet. Try `foodtrend ingest reddit`.")

	return &View{
		styles:    s,
		keymap:    km,
		table:     t,
		statusbar: status.NewBar(s, km),
		service:   service,
		limit:     limit,
		ctx:       context.Background(),
		tags:      make(map[int64][]string),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the newest posts.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load fetches the newest posts in the background.
func (v *View) Load() tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	ctx, service, limit := v.ctx, v.service, v.limit
	return func() tea.Msg {
		posts, err := service.Recent(ctx, limit)
		return messages.PostsLoaded{Posts: posts, Err: err}
	}
}

// loadTags fetches the matched terms of the selected post unless cached.
func (v *View) loadTags() tea.Cmd {
	post := v.Selected()
	if post == nil {
		return nil
	}
	if _, ok := v.tags[post.ID]; ok {
		return nil
	}
	ctx, service, id := v.ctx, v.service, post.ID
	return func() tea.Msg {
		tags, err := service.Tags(ctx, id)
		return messages.TagsLoaded{DocumentID: id, Tags: tags, Err: err}
	}
}

// Update handles messages for the posts tab.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PostsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.Fail(msg.Err)
			return v, nil
		}
		v.err = nil
		v.posts = msg.Posts
		v.tags = make(map[int64][]string)
		v.table.SetRows(rowsFor(msg.Posts))
		v.statusbar.SetCount(len(msg.Posts), "posts")
		return v, v.loadTags()

	case messages.TagsLoaded:
		if msg.Err != nil {
			v.statusbar.Fail(msg.Err)
			return v, nil
		}
		if msg.Tags == nil {
			msg.Tags = []string{}
		}
		v.tags[msg.DocumentID] = msg.Tags
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Refresh) {
			return v, v.Load()
		}
		v.table, _ = v.table.Update(msg)
		return v, v.loadTags()
	}
	return v, nil
}

func rowsFor(posts []domain.Document) [][]string {
	rows := make([][]string, len(posts))
	for i, p := range posts {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		rows[i] = []string{
			p.CreatedAt.UTC().Format("2006-01-02 15:04"),
			p.Source,
			title,
			strconv.Itoa(p.Score),
			strconv.Itoa(p.Comments),
		}
	}
	return rows
}

// View renders the tab.
func (v *View) View() string {
	sections := []string{v.styles.Subtitle.Render("Recent posts"), "", v.table.View()}
	if post := v.Selected(); post != nil {
		sections = append(sections, "", v.renderTags(post.ID))
	}
	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderTags(id int64) string {
	tags, ok := v.tags[id]
	switch {
	case !ok:
		return v.styles.Muted.Render("Terms: loading...")
	case len(tags) == 0:
		return v.styles.Muted.Render("Terms: none matched")
	default:
		return v.styles.Normal.Render("Terms: ") + v.styles.Rising.Render(strings.Join(tags, ", "))
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.table.SetHeight(height - 8)
	v.statusbar.SetWidth(width)
}

// Posts returns the loaded posts.
func (v *View) Posts() []domain.Document {
	return v.posts
}

// Selected returns the highlighted post, or nil when there is none.
func (v *View) Selected() *domain.Document {
	i := v.table.Selected()
	if i < 0 || i >= len(v.posts) {
		return nil
	}
	return &v.posts[i]
}

// Tags returns the cached terms of a post.
func (v *View) Tags(id int64) ([]string, bool) {
	tags, ok := v.tags[id]
	return tags, ok
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
