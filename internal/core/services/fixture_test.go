package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodtrend/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

var fixtureNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fixture is an in-memory store with a frozen clock.
type fixture struct {
	store *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.SetClock(func() time.Time { return fixtureNow })
	return &fixture{store: store}
}

func (f *fixture) clock() time.Time {
	return fixtureNow
}

// addPost stores a post created age before fixtureNow.
func (f *fixture) addPost(
	t *testing.T, externalID, source, title, body string, age time.Duration, score, comments int,
) *domain.Document {
	t.Helper()
	doc := &domain.Document{
		ExternalID: externalID,
		Source:     source,
		Title:      title,
		Body:       body,
		CreatedAt:  fixtureNow.Add(-age),
		Score:      score,
		Comments:   comments,
	}
	_, err := f.store.Documents().Save(context.Background(), doc)
	require.NoError(t, err)
	return doc
}

// addTerm stores an active term.
func (f *fixture) addTerm(t *testing.T, text string, origin domain.CulturalOrigin) *domain.Term {
	t.Helper()
	term := &domain.Term{Text: text, Active: true, Origin: origin}
	_, err := f.store.Terms().Save(context.Background(), term)
	require.NoError(t, err)
	return term
}

// link records associations without running the matcher.
func (f *fixture) link(t *testing.T, doc *domain.Document, terms ...*domain.Term) {
	t.Helper()
	termIDs := make([]int64, len(terms))
	for i, term := range terms {
		termIDs[i] = term.ID
	}
	_, err := f.store.Associations().RecordMatches(context.Background(), doc.ID, termIDs, fixtureNow, true)
	require.NoError(t, err)
}

func (f *fixture) matcher() *MatchingService {
	svc := NewMatchingService(
		f.store.Terms(), f.store.Documents(), f.store.Associations(),
		domain.DefaultMatchingSettings(),
	)
	svc.SetClock(f.clock)
	return svc
}

// tagsOf returns the term ids associated with a document.
func (f *fixture) tagsOf(t *testing.T, doc *domain.Document) []int64 {
	t.Helper()
	assocs, err := f.store.Associations().ListForDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	out := make([]int64, len(assocs))
	for i, a := range assocs {
		out[i] = a.TermID
	}
	return out
}

const day = 24 * time.Hour
