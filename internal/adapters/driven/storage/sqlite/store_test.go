package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	store.SetClock(func() time.Time { return testNow })

	cleanup := func() {
		assert.NoError(t, store.Close())
	}

	return store, cleanup
}

// saveDoc stores a post created age before testNow.
func saveDoc(t *testing.T, store *Store, externalID, title, body string, age time.Duration) *domain.Document {
	t.Helper()
	doc := &domain.Document{
		ExternalID: externalID,
		Source:     "food",
		Title:      title,
		Body:       body,
		CreatedAt:  testNow.Add(-age),
		Score:      10,
		Comments:   2,
	}
	created, err := store.DocumentStore().Save(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, created)
	return doc
}

// saveTerm stores an active term.
func saveTerm(t *testing.T, store *Store, text string, origin domain.CulturalOrigin) *domain.Term {
	t.Helper()
	term := &domain.Term{Text: text, Active: true, Origin: origin}
	_, err := store.TermStore().Save(context.Background(), term)
	require.NoError(t, err)
	return term
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(dir, "foodtrend.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	tables := []string{"documents", "terms", "post_terms", "scheduled_tasks", "task_results"}
	for _, table := range tables {
		var exists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&exists)
		require.NoError(t, err)
		assert.Equal(t, 1, exists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	_, err = store.TermStore().Save(ctx, &domain.Term{Text: "ramen", Active: true})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	var migrations int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&migrations))
	assert.Equal(t, 1, migrations)

	term, err := reopened.TermStore().GetByText(ctx, "ramen")
	require.NoError(t, err)
	assert.Equal(t, "ramen", term.Text)
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var fkEnabled int
	err := store.db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	require.NoError(t, err)
	assert.Equal(t, 1, fkEnabled)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

func TestStore_InterfaceGetters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NotNil(t, store.DocumentStore())
	assert.NotNil(t, store.TermStore())
	assert.NotNil(t, store.AssociationStore())
	assert.NotNil(t, store.SchedulerStore())
}

// ==================== DocumentStore Tests ====================

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "t3_abc", "Best ramen", "tonkotsu broth", time.Hour)
	assert.NotZero(t, doc.ID)
	assert.True(t, testNow.Equal(doc.FetchedAt))

	got, err := store.DocumentStore().Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "t3_abc", got.ExternalID)
	assert.Equal(t, "food", got.Source)
	assert.Equal(t, "Best ramen", got.Title)
	assert.Equal(t, "tonkotsu broth", got.Body)
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, 2, got.Comments)
	assert.Nil(t, got.MatchedAt)
	assert.True(t, doc.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, testNow.Equal(got.FetchedAt))

	byExternal, err := store.DocumentStore().GetByExternalID(ctx, "t3_abc")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, byExternal.ID)
}

func TestDocumentStore_SaveExistingRefreshesEngagementOnly(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	original := saveDoc(t, store, "t3_abc", "Best ramen", "", time.Hour)
	require.NoError(t, store.AssociationStore().MarkProcessed(ctx, original.ID, testNow))

	update := &domain.Document{
		ExternalID: "t3_abc",
		Title:      "Edited title",
		CreatedAt:  testNow,
		Score:      99,
		Comments:   40,
	}
	created, err := store.DocumentStore().Save(ctx, update)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, original.ID, update.ID)

	got, err := store.DocumentStore().Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Best ramen", got.Title)
	assert.Equal(t, 99, got.Score)
	assert.Equal(t, 40, got.Comments)
	assert.True(t, original.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.MatchedAt)
	assert.True(t, testNow.Equal(*got.MatchedAt))

	count, err := store.DocumentStore().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDocumentStore_SaveRejectsEmptyExternalID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.DocumentStore().Save(context.Background(), &domain.Document{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.DocumentStore().Get(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.DocumentStore().GetByExternalID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListForMatching(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	oldest := saveDoc(t, store, "a", "oldest", "", 3*time.Hour)
	middle := saveDoc(t, store, "b", "middle", "", 2*time.Hour)
	newest := saveDoc(t, store, "c", "newest", "", time.Hour)
	require.NoError(t, store.AssociationStore().MarkProcessed(ctx, middle.ID, testNow))

	t.Run("all newest first", func(t *testing.T) {
		docs, err := store.DocumentStore().ListForMatching(ctx, domain.DocumentQuery{})
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, newest.ID, docs[0].ID)
		assert.Equal(t, middle.ID, docs[1].ID)
		assert.Equal(t, oldest.ID, docs[2].ID)
	})

	t.Run("unprocessed only", func(t *testing.T) {
		docs, err := store.DocumentStore().ListForMatching(ctx, domain.DocumentQuery{UnprocessedOnly: true})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, newest.ID, docs[0].ID)
		assert.Equal(t, oldest.ID, docs[1].ID)
	})

	t.Run("subset", func(t *testing.T) {
		docs, err := store.DocumentStore().ListForMatching(ctx, domain.DocumentQuery{
			IDs: []int64{oldest.ID, middle.ID},
		})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, middle.ID, docs[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		docs, err := store.DocumentStore().ListForMatching(ctx, domain.DocumentQuery{Limit: 1})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, newest.ID, docs[0].ID)
	})
}

func TestDocumentStore_ListInWindow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	old := saveDoc(t, store, "old", "ramen", "", 10*24*time.Hour)
	recent := saveDoc(t, store, "recent", "ramen", "", 24*time.Hour)
	other := saveDoc(t, store, "other", "tacos", "", 2*24*time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)

	_, err := store.AssociationStore().RecordMatches(ctx, old.ID, []int64{ramen.ID}, testNow, false)
	require.NoError(t, err)
	_, err = store.AssociationStore().RecordMatches(ctx, recent.ID, []int64{ramen.ID}, testNow, false)
	require.NoError(t, err)

	since := testNow.Add(-7 * 24 * time.Hour)

	docs, err := store.DocumentStore().ListInWindow(ctx, domain.WindowQuery{Since: since})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, recent.ID, docs[0].ID)
	assert.Equal(t, other.ID, docs[1].ID)

	docs, err = store.DocumentStore().ListInWindow(ctx, domain.WindowQuery{Since: since, TermID: ramen.ID})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, recent.ID, docs[0].ID)
}

func TestDocumentStore_ListRecent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	saveDoc(t, store, "a", "one", "", 3*time.Hour)
	saveDoc(t, store, "b", "two", "", 2*time.Hour)
	newest := saveDoc(t, store, "c", "three", "", time.Hour)

	docs, err := store.DocumentStore().ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, newest.ID, docs[0].ID)
}

func TestDocumentStore_DeleteCascadesAssociations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "a", "ramen", "", time.Hour)
	term := saveTerm(t, store, "ramen", domain.OriginJapanese)
	_, err := store.AssociationStore().RecordMatches(ctx, doc.ID, []int64{term.ID}, testNow, false)
	require.NoError(t, err)

	require.NoError(t, store.DocumentStore().Delete(ctx, doc.ID))

	assocs, err := store.AssociationStore().ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, assocs)

	count, err := store.DocumentStore().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// ==================== TermStore Tests ====================

func TestTermStore_SaveCanonicalisesAndUpserts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	term := &domain.Term{Text: "  Air   Fryer ", Active: true}
	created, err := store.TermStore().Save(ctx, term)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "air fryer", term.Text)
	assert.Equal(t, domain.OriginOther, term.Origin)

	again := &domain.Term{Text: "air fryer", Active: false, Origin: domain.OriginAmericanCanadian}
	created, err = store.TermStore().Save(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, term.ID, again.ID)

	got, err := store.TermStore().Get(ctx, term.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, domain.OriginAmericanCanadian, got.Origin)
	assert.True(t, got.IsPhrase())
}

func TestTermStore_SaveRejectsBlankText(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.TermStore().Save(context.Background(), &domain.Term{Text: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTermStore_FindActiveByText(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)
	tacos := saveTerm(t, store, "tacos", domain.OriginMexican)
	require.NoError(t, store.TermStore().SetActive(ctx, tacos.ID, false))

	got, err := store.TermStore().FindActiveByText(ctx, " RAMEN ")
	require.NoError(t, err)
	assert.Equal(t, ramen.ID, got.ID)

	_, err = store.TermStore().FindActiveByText(ctx, "tacos")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inactive, err := store.TermStore().GetByText(ctx, "tacos")
	require.NoError(t, err)
	assert.False(t, inactive.Active)
}

func TestTermStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	saveTerm(t, store, "tacos", domain.OriginMexican)
	saveTerm(t, store, "birria", domain.OriginMexican)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)
	require.NoError(t, store.TermStore().SetActive(ctx, ramen.ID, false))

	active, err := store.TermStore().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "birria", active[0].Text)
	assert.Equal(t, "tacos", active[1].Text)

	all, err := store.TermStore().List(ctx, domain.TermFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	japanese, err := store.TermStore().List(ctx, domain.TermFilter{
		IncludeInactive: true,
		Origin:          domain.OriginJapanese,
	})
	require.NoError(t, err)
	require.Len(t, japanese, 1)
	assert.Equal(t, "ramen", japanese[0].Text)
}

func TestTermStore_SetActiveNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.TermStore().SetActive(context.Background(), 999, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTermStore_DeleteCascadesAssociations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "a", "ramen tacos", "", time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)
	tacos := saveTerm(t, store, "tacos", domain.OriginMexican)
	_, err := store.AssociationStore().RecordMatches(ctx, doc.ID, []int64{ramen.ID, tacos.ID}, testNow, false)
	require.NoError(t, err)

	require.NoError(t, store.TermStore().Delete(ctx, ramen.ID))

	assocs, err := store.AssociationStore().ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, assocs, 1)
	assert.Equal(t, tacos.ID, assocs[0].TermID)
}

// ==================== AssociationStore Tests ====================

func TestAssociationStore_RecordMatches(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "a", "ramen and tacos", "", time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)
	tacos := saveTerm(t, store, "tacos", domain.OriginMexican)
	runAt := testNow.Add(time.Minute)

	created, err := store.AssociationStore().RecordMatches(ctx, doc.ID, []int64{ramen.ID, tacos.ID}, runAt, false)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	got, err := store.DocumentStore().Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MatchedAt)
	assert.True(t, runAt.Equal(*got.MatchedAt))

	assocs, err := store.AssociationStore().ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, assocs, 2)
	assert.Equal(t, ramen.ID, assocs[0].TermID)
	assert.True(t, testNow.Equal(assocs[0].CreatedAt))
}

func TestAssociationStore_RecordMatchesIsIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "a", "ramen", "", time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)

	_, err := store.AssociationStore().RecordMatches(ctx, doc.ID, []int64{ramen.ID}, testNow, false)
	require.NoError(t, err)

	store.SetClock(func() time.Time { return testNow.Add(time.Hour) })
	created, err := store.AssociationStore().RecordMatches(ctx, doc.ID, []int64{ramen.ID}, testNow.Add(time.Hour), true)
	require.NoError(t, err)
	assert.Zero(t, created)

	assocs, err := store.AssociationStore().ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, assocs, 1)
	assert.True(t, testNow.Equal(assocs[0].CreatedAt), "original timestamp is kept")
}

func TestAssociationStore_RecordMatchesKeepsExistingStamp(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "a", "ramen", "", time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)

	_, err := store.AssociationStore().RecordMatches(ctx, doc.ID, nil, testNow, false)
	require.NoError(t, err)

	created, err := store.AssociationStore().RecordMatches(ctx, doc.ID, []int64{ramen.ID}, testNow.Add(time.Hour), false)
	assert.ErrorIs(t, err, domain.ErrAlreadyMatched)
	assert.Zero(t, created)

	got, err := store.DocumentStore().Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MatchedAt)
	assert.True(t, testNow.Equal(*got.MatchedAt))

	assocs, err := store.AssociationStore().ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, assocs)
}

func TestAssociationStore_RecordMatchesUnknownDocument(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)

	_, err := store.AssociationStore().RecordMatches(ctx, 404, []int64{ramen.ID}, testNow, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssociationStore_RecordMatchesRollsBackOnFailure(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "a", "ramen", "", time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)

	// Term 999 violates the foreign key.
	_, err := store.AssociationStore().RecordMatches(ctx, doc.ID, []int64{ramen.ID, 999}, testNow, false)
	require.Error(t, err)

	got, err := store.DocumentStore().Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MatchedAt)

	assocs, err := store.AssociationStore().ListForDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, assocs)
}

func TestAssociationStore_CreateIfAbsent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	doc := saveDoc(t, store, "a", "ramen", "", time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)

	created, err := store.AssociationStore().CreateIfAbsent(ctx, doc.ID, ramen.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.AssociationStore().CreateIfAbsent(ctx, doc.ID, ramen.ID)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAssociationStore_MarkProcessedNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.AssociationStore().MarkProcessed(context.Background(), 404, testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssociationStore_ListMentions(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	recent := saveDoc(t, store, "recent", "ramen tacos", "", 24*time.Hour)
	old := saveDoc(t, store, "old", "ramen", "", 30*24*time.Hour)
	ramen := saveTerm(t, store, "ramen", domain.OriginJapanese)
	tacos := saveTerm(t, store, "tacos", domain.OriginMexican)

	_, err := store.AssociationStore().RecordMatches(ctx, recent.ID, []int64{ramen.ID, tacos.ID}, testNow, false)
	require.NoError(t, err)
	_, err = store.AssociationStore().RecordMatches(ctx, old.ID, []int64{ramen.ID}, testNow, false)
	require.NoError(t, err)
	require.NoError(t, store.TermStore().SetActive(ctx, tacos.ID, false))

	since := testNow.Add(-7 * 24 * time.Hour)

	all, err := store.AssociationStore().ListMentions(ctx, since, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	active, err := store.AssociationStore().ListMentions(ctx, since, true)
	require.NoError(t, err)
	require.Len(t, active, 1)

	m := active[0]
	assert.Equal(t, ramen.ID, m.TermID)
	assert.Equal(t, "ramen", m.TermText)
	assert.Equal(t, domain.OriginJapanese, m.Origin)
	assert.Equal(t, recent.ID, m.DocumentID)
	assert.Equal(t, 10, m.Score)
	assert.Equal(t, 2, m.Comments)
	assert.Equal(t, "food", m.Source)
	assert.True(t, recent.CreatedAt.Equal(m.CreatedAt))
}

func TestFormatTime_SortsLexically(t *testing.T) {
	earlier := formatTime(time.Date(2024, 1, 1, 9, 0, 0, 5, time.UTC))
	later := formatTime(time.Date(2024, 1, 1, 11, 0, 0, 0, time.FixedZone("CET", 3600)))
	assert.Less(t, earlier, later)
	assert.Equal(t, len(earlier), len(later))
}

func TestParseTime_Invalid(t *testing.T) {
	assert.True(t, parseTime("not a time").IsZero())
}
