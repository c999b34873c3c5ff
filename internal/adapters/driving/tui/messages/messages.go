// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// Tab identifies a dashboard tab.
type Tab int

const (
	// TabTerms ranks trending vocabulary terms.
	TabTerms Tab = iota
	// TabCuisines ranks trending cultural origins.
	TabCuisines
	// TabSearch is the query input and ranked results.
	TabSearch
	// TabPosts lists the newest stored posts.
	TabPosts
)

// Tabs lists every tab in display order.
func Tabs() []Tab {
	return []Tab{TabTerms, TabCuisines, TabSearch, TabPosts}
}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabTerms:
		return "Terms"
	case TabCuisines:
		return "Cuisines"
	case TabSearch:
		return "Search"
	case TabPosts:
		return "Posts"
	default:
		return "unknown"
	}
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	tabs := Tabs()
	return tabs[(int(t)+1)%len(tabs)]
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	tabs := Tabs()
	return tabs[(int(t)+len(tabs)-1)%len(tabs)]
}

// TabChanged is sent when the active tab switches.
type TabChanged struct {
	Tab Tab
}

// TermTrendsLoaded carries the term ranking.
type TermTrendsLoaded struct {
	Trends []domain.TermTrend
	Err    error
}

// CuisineTrendsLoaded carries the cultural-origin ranking.
type CuisineTrendsLoaded struct {
	Trends []domain.CuisineTrend
	Err    error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.SearchResult
	Err     error
}

// PostsLoaded carries the newest posts.
type PostsLoaded struct {
	Posts []domain.Document
	Err   error
}

// TagsLoaded carries the terms matched in one post.
type TagsLoaded struct {
	DocumentID int64
	Tags       []string
	Err        error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
