package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

// failingAssocStore fails RecordMatches after okCalls successful calls.
type failingAssocStore struct {
	driven.AssociationStore
	okCalls int
	calls   int
}

func (s *failingAssocStore) RecordMatches(
	ctx context.Context, documentID int64, termIDs []int64, at time.Time, force bool,
) (int, error) {
	s.calls++
	if s.calls > s.okCalls {
		return 0, errors.New("disk full")
	}
	return s.AssociationStore.RecordMatches(ctx, documentID, termIDs, at, force)
}

// racingAssocStore stamps each document through the embedded store
// before the run records it, as a second process would.
type racingAssocStore struct {
	driven.AssociationStore
	stampedAt time.Time
}

func (s *racingAssocStore) RecordMatches(
	ctx context.Context, documentID int64, termIDs []int64, at time.Time, force bool,
) (int, error) {
	if _, err := s.AssociationStore.RecordMatches(ctx, documentID, nil, s.stampedAt, true); err != nil {
		return 0, err
	}
	return s.AssociationStore.RecordMatches(ctx, documentID, termIDs, at, force)
}

func TestMatchingService_Run_CreatesAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ramenPost := f.addPost(t, "p1", "food", "Best ramen in town", "Tonkotsu broth", 2*time.Hour, 10, 1)
	fryerPost := f.addPost(t, "p2", "Cooking", "My new Air-Fryer!", "wings came out great", time.Hour, 5, 0)
	ramen := f.addTerm(t, "ramen", domain.OriginJapanese)
	fryer := f.addTerm(t, "air fryer", domain.OriginAmericanCanadian)
	f.addTerm(t, "tacos", domain.OriginMexican)

	report, err := f.matcher().Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 2, report.DocumentsProcessed)
	assert.Equal(t, 3, report.ActiveTerms)
	assert.Zero(t, report.EmptyDocuments)
	assert.True(t, fixtureNow.Equal(report.StartedAt))

	assert.Equal(t, []int64{ramen.ID}, f.tagsOf(t, ramenPost))
	assert.Equal(t, []int64{fryer.ID}, f.tagsOf(t, fryerPost))

	stored, err := f.store.Documents().Get(ctx, ramenPost.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MatchedAt)
	assert.True(t, fixtureNow.Equal(*stored.MatchedAt))
}

func TestMatchingService_Run_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addPost(t, "p1", "food", "ramen and tacos", "", time.Hour, 0, 0)
	f.addTerm(t, "ramen", domain.OriginJapanese)
	f.addTerm(t, "tacos", domain.OriginMexican)
	matcher := f.matcher()

	first, err := matcher.Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := matcher.Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Zero(t, second.DocumentsProcessed)

	forced, err := matcher.Run(ctx, domain.MatchOptions{Force: true})
	require.NoError(t, err)
	assert.Zero(t, forced.Created)
	assert.Equal(t, 1, forced.DocumentsProcessed)
}

func TestMatchingService_Run_ForcePicksUpNewTerms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := f.addPost(t, "p1", "food", "kimchi fried rice", "with gochujang", time.Hour, 0, 0)
	kimchi := f.addTerm(t, "kimchi", domain.OriginKorean)
	matcher := f.matcher()

	_, err := matcher.Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)

	gochujang := f.addTerm(t, "gochujang", domain.OriginKorean)

	report, err := matcher.Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Zero(t, report.Created, "processed documents are skipped without force")

	report, err = matcher.Run(ctx, domain.MatchOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.ElementsMatch(t, []int64{kimchi.ID, gochujang.ID}, f.tagsOf(t, post))
}

func TestMatchingService_Run_Subset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.addPost(t, "a", "food", "pho", "", time.Hour, 0, 0)
	b := f.addPost(t, "b", "food", "pho", "", 2*time.Hour, 0, 0)
	f.addTerm(t, "pho", domain.OriginSoutheastAsian)

	report, err := f.matcher().Run(ctx, domain.MatchOptions{DocumentIDs: []int64{b.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Empty(t, f.tagsOf(t, a))
	assert.Len(t, f.tagsOf(t, b), 1)
}

func TestMatchingService_Run_LimitTakesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older := f.addPost(t, "old", "food", "sushi", "", 3*time.Hour, 0, 0)
	newer := f.addPost(t, "new", "food", "sushi", "", time.Hour, 0, 0)
	f.addTerm(t, "sushi", domain.OriginJapanese)

	report, err := f.matcher().Run(ctx, domain.MatchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Len(t, f.tagsOf(t, newer), 1)
	assert.Empty(t, f.tagsOf(t, older))
}

func TestMatchingService_Run_NegativeLimit(t *testing.T) {
	f := newFixture(t)

	_, err := f.matcher().Run(context.Background(), domain.MatchOptions{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMatchingService_Run_EmptyDocumentIsStamped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty := f.addPost(t, "empty", "food", "", "", time.Hour, 0, 0)
	symbols := f.addPost(t, "symbols", "food", "!!!", "???", time.Hour, 0, 0)
	f.addTerm(t, "ramen", domain.OriginJapanese)

	report, err := f.matcher().Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.EmptyDocuments)
	assert.Equal(t, 2, report.DocumentsProcessed)

	for _, doc := range []*domain.Document{empty, symbols} {
		stored, err := f.store.Documents().Get(ctx, doc.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsProcessed())
	}
}

func TestMatchingService_Run_IgnoresInactiveAndRejectedTerms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := f.addPost(t, "p1", "food", "Easy food ideas: tacos", "", time.Hour, 0, 0)
	tacos := f.addTerm(t, "tacos", domain.OriginMexican)
	f.addTerm(t, "food", domain.OriginOther)
	f.addTerm(t, "ideas", domain.OriginOther)
	ideas, err := f.store.Terms().GetByText(ctx, "ideas")
	require.NoError(t, err)
	require.NoError(t, f.store.Terms().SetActive(ctx, ideas.ID, false))

	report, err := f.matcher().Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.ActiveTerms)
	assert.Equal(t, []int64{tacos.ID}, f.tagsOf(t, post))
}

func TestMatchingService_Run_PhraseNeedsWholeTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plural := f.addPost(t, "p1", "food", "Two air fryers compared", "", time.Hour, 0, 0)
	exact := f.addPost(t, "p2", "food", "AIR   FRYER chips", "", time.Hour, 0, 0)
	f.addTerm(t, "air fryer", domain.OriginAmericanCanadian)

	_, err := f.matcher().Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, f.tagsOf(t, plural))
	assert.Len(t, f.tagsOf(t, exact), 1)
}

func TestMatchingService_Run_ContextCancelled(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "p1", "food", "ramen", "", time.Hour, 0, 0)
	f.addTerm(t, "ramen", domain.OriginJapanese)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.matcher().Run(ctx, domain.MatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.DocumentsProcessed)
}

func TestMatchingService_Run_StoreFailureKeepsEarlierWork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	newest := f.addPost(t, "p1", "food", "ramen", "", time.Hour, 0, 0)
	oldest := f.addPost(t, "p2", "food", "ramen", "", 2*time.Hour, 0, 0)
	f.addTerm(t, "ramen", domain.OriginJapanese)

	assocs := &failingAssocStore{AssociationStore: f.store.Associations(), okCalls: 1}
	matcher := NewMatchingService(f.store.Terms(), f.store.Documents(), assocs, domain.DefaultMatchingSettings())
	matcher.SetClock(f.clock)

	report, err := matcher.Run(ctx, domain.MatchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, report.DocumentsProcessed)

	assert.Len(t, f.tagsOf(t, newest), 1)
	stored, err := f.store.Documents().Get(ctx, oldest.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsProcessed())

	// A later run resumes with the untouched document.
	report, err = f.matcher().Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Equal(t, 1, report.Created)
}

func TestMatchingService_Run_DeactivationKeepsAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := f.addPost(t, "p1", "food", "boba tea", "", time.Hour, 0, 0)
	boba := f.addTerm(t, "boba", domain.OriginChinese)
	matcher := f.matcher()

	_, err := matcher.Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	require.NoError(t, f.store.Terms().SetActive(ctx, boba.ID, false))

	report, err := matcher.Run(ctx, domain.MatchOptions{Force: true})
	require.NoError(t, err)
	assert.Zero(t, report.ActiveTerms)
	assert.Equal(t, []int64{boba.ID}, f.tagsOf(t, post))
}

func TestSortedIDs(t *testing.T) {
	set := map[int64]struct{}{5: {}, 1: {}, 3: {}}
	assert.Equal(t, []int64{1, 3, 5}, sortedIDs(set))
	assert.Empty(t, sortedIDs(nil))
}

func TestMatchingService_Run_PhraseAndSingleWordsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := f.addPost(t, "p1", "food", "air fryer chicken", "", time.Hour, 0, 0)
	phrase := f.addTerm(t, "air fryer", domain.OriginOther)
	air := f.addTerm(t, "air", domain.OriginOther)
	fryer := f.addTerm(t, "fryer", domain.OriginOther)

	report, err := f.matcher().Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Created)
	assert.ElementsMatch(t, []int64{phrase.ID, air.ID, fryer.ID}, f.tagsOf(t, post))
}

func TestMatchingService_Run_ShortAndNumericTermsNeverMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post := f.addPost(t, "p1", "food", "ox tail for 2024", "", time.Hour, 0, 0)
	f.addTerm(t, "ox", domain.OriginOther)
	f.addTerm(t, "2024", domain.OriginOther)

	report, err := f.matcher().Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Zero(t, report.ActiveTerms)
	assert.Zero(t, report.Created)
	assert.Empty(t, f.tagsOf(t, post))
}

func TestMatchingService_Run_KeepsConcurrentStamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc := f.addPost(t, "p1", "food", "ramen night", "", time.Hour, 0, 0)
	f.addTerm(t, "ramen", domain.OriginJapanese)
	earlier := fixtureNow.Add(-time.Minute)

	svc := NewMatchingService(
		f.store.Terms(), f.store.Documents(),
		&racingAssocStore{AssociationStore: f.store.Associations(), stampedAt: earlier},
		domain.DefaultMatchingSettings(),
	)
	svc.SetClock(f.clock)

	report, err := svc.Run(ctx, domain.MatchOptions{})
	require.NoError(t, err)
	assert.Zero(t, report.DocumentsProcessed)
	assert.Zero(t, report.Created)

	stored, err := f.store.Documents().Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MatchedAt)
	assert.True(t, earlier.Equal(*stored.MatchedAt))
	assert.Empty(t, f.tagsOf(t, doc))
}
