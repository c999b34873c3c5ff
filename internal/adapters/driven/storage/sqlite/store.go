package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/foodtrend/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

// timeLayout is fixed width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.foodtrend/data/foodtrend.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".foodtrend", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "foodtrend.db")

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SetClock overrides the time source for FetchedAt and association stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// TermStore returns a TermStore interface backed by this store.
func (s *Store) TermStore() driven.TermStore {
	return &termStore{store: s}
}

// AssociationStore returns an AssociationStore interface backed by this store.
func (s *Store) AssociationStore() driven.AssociationStore {
	return &associationStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, external_id, source, title, body, created_at, score, comments, matched_at, fetched_at`

// Save inserts a document or refreshes the engagement counters of the
// stored document with the same external id.
func (s *documentStore) Save(ctx context.Context, doc *domain.Document) (bool, error) {
	if doc.ExternalID == "" {
		return false, fmt.Errorf("%w: document external id is empty", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM documents WHERE external_id = ?", doc.ExternalID).Scan(&id)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			"UPDATE documents SET score = ?, comments = ? WHERE id = ?",
			doc.Score, doc.Comments, id); err != nil {
			return false, fmt.Errorf("updating document: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("committing document: %w", err)
		}
		doc.ID = id
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("looking up document: %w", err)
	}

	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = s.store.now().UTC()
	}
	doc.CreatedAt = doc.CreatedAt.UTC()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO documents (external_id, source, title, body, created_at, score, comments, matched_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ExternalID, doc.Source, doc.Title, doc.Body, formatTime(doc.CreatedAt),
		doc.Score, doc.Comments, formatTimePtr(doc.MatchedAt), formatTime(doc.FetchedAt))
	if err != nil {
		return false, fmt.Errorf("inserting document: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("reading document id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing document: %w", err)
	}
	doc.ID = id
	return true, nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	return scanDocument(row)
}

// GetByExternalID retrieves a document by its origin-platform id.
func (s *documentStore) GetByExternalID(ctx context.Context, externalID string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE external_id = ?", externalID)
	return scanDocument(row)
}

// ListForMatching returns candidate documents, newest first.
func (s *documentStore) ListForMatching(ctx context.Context, q domain.DocumentQuery) ([]domain.Document, error) {
	var (
		where []string
		args  []any
	)
	if q.UnprocessedOnly {
		where = append(where, "matched_at IS NULL")
	}
	if len(q.IDs) > 0 {
		where = append(where, "id IN ("+placeholders(len(q.IDs))+")")
		for _, id := range q.IDs {
			args = append(args, id)
		}
	}

	query := "SELECT " + documentColumns + " FROM documents"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	return s.query(ctx, query, args...)
}

// ListInWindow returns documents created at or after q.Since, newest first.
func (s *documentStore) ListInWindow(ctx context.Context, q domain.WindowQuery) ([]domain.Document, error) {
	if q.TermID != 0 {
		return s.query(ctx, `
			SELECT d.id, d.external_id, d.source, d.title, d.body, d.created_at,
				d.score, d.comments, d.matched_at, d.fetched_at
			FROM documents d
			JOIN post_terms pt ON pt.document_id = d.id
			WHERE pt.term_id = ? AND d.created_at >= ?
			ORDER BY d.created_at DESC, d.id DESC
		`, q.TermID, formatTime(q.Since))
	}
	return s.query(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE created_at >= ? ORDER BY created_at DESC, id DESC",
		formatTime(q.Since))
}

// ListRecent returns up to limit documents, newest first.
func (s *documentStore) ListRecent(ctx context.Context, limit int) ([]domain.Document, error) {
	return s.ListForMatching(ctx, domain.DocumentQuery{Limit: limit})
}

// Delete removes a document; its associations cascade.
func (s *documentStore) Delete(ctx context.Context, id int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// Count returns the number of stored documents.
func (s *documentStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

func (s *documentStore) query(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocumentFrom(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// ==================== Term Store ====================

// termStore implements driven.TermStore.
type termStore struct {
	store *Store
}

var _ driven.TermStore = (*termStore)(nil)

const termColumns = `id, text, active, origin, origin_confidence`

// ListActive returns all active terms ordered by text.
func (s *termStore) ListActive(ctx context.Context) ([]domain.Term, error) {
	return s.List(ctx, domain.TermFilter{})
}

// FindActiveByText looks a term up case-insensitively.
func (s *termStore) FindActiveByText(ctx context.Context, text string) (*domain.Term, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+termColumns+" FROM terms WHERE text = ? AND active = 1",
		domain.CanonicalTermText(text))
	return scanTerm(row)
}

// Save inserts a term or updates the existing term with the same text.
func (s *termStore) Save(ctx context.Context, term *domain.Term) (bool, error) {
	text := domain.CanonicalTermText(term.Text)
	if text == "" {
		return false, fmt.Errorf("%w: term text is empty", domain.ErrInvalidInput)
	}
	term.Text = text
	term.Origin = term.Origin.OrDefault()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM terms WHERE text = ?", text).Scan(&id)
	created := false
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx,
			"UPDATE terms SET active = ?, origin = ?, origin_confidence = ? WHERE id = ?",
			boolToInt(term.Active), term.Origin.String(), term.OriginConfidence, id)
		if err != nil {
			return false, fmt.Errorf("updating term: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			"INSERT INTO terms (text, active, origin, origin_confidence) VALUES (?, ?, ?, ?)",
			text, boolToInt(term.Active), term.Origin.String(), term.OriginConfidence)
		if err != nil {
			return false, fmt.Errorf("inserting term: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return false, fmt.Errorf("reading term id: %w", err)
		}
		created = true
	default:
		return false, fmt.Errorf("looking up term: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing term: %w", err)
	}
	term.ID = id
	return created, nil
}

// Get retrieves a term by ID.
func (s *termStore) Get(ctx context.Context, id int64) (*domain.Term, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+termColumns+" FROM terms WHERE id = ?", id)
	return scanTerm(row)
}

// GetByText retrieves a term by text regardless of its active flag.
func (s *termStore) GetByText(ctx context.Context, text string) (*domain.Term, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+termColumns+" FROM terms WHERE text = ?", domain.CanonicalTermText(text))
	return scanTerm(row)
}

// List returns terms matching filter ordered by text.
func (s *termStore) List(ctx context.Context, filter domain.TermFilter) ([]domain.Term, error) {
	var (
		where []string
		args  []any
	)
	if !filter.IncludeInactive {
		where = append(where, "active = 1")
	}
	if filter.Origin != "" {
		where = append(where, "origin = ?")
		args = append(args, filter.Origin.String())
	}

	query := "SELECT " + termColumns + " FROM terms"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY text"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying terms: %w", err)
	}
	defer rows.Close()

	terms := make([]domain.Term, 0)
	for rows.Next() {
		term, err := scanTermFrom(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, *term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating terms: %w", err)
	}
	return terms, nil
}

// SetActive updates a term's active flag.
func (s *termStore) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := s.store.db.ExecContext(ctx, "UPDATE terms SET active = ? WHERE id = ?", boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("updating term: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating term: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a term; its associations cascade.
func (s *termStore) Delete(ctx context.Context, id int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM terms WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting term: %w", err)
	}
	return nil
}

// ==================== Association Store ====================

// associationStore implements driven.AssociationStore.
type associationStore struct {
	store *Store
}

var _ driven.AssociationStore = (*associationStore)(nil)

// RecordMatches creates the absent associations and stamps the document
// in one transaction. Existing associations keep their timestamps.
func (s *associationStore) RecordMatches(
	ctx context.Context, documentID int64, termIDs []int64, matchedAt time.Time, force bool,
) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := "UPDATE documents SET matched_at = ? WHERE id = ?"
	if !force {
		query += " AND matched_at IS NULL"
	}
	res, err := tx.ExecContext(ctx, query, formatTime(matchedAt), documentID)
	if err != nil {
		return 0, fmt.Errorf("marking document processed: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("marking document processed: %w", err)
	} else if n == 0 {
		return 0, s.missingStamp(ctx, tx, documentID)
	}

	created := 0
	at := formatTime(s.store.now())
	for _, termID := range termIDs {
		n, err := insertAssociation(ctx, tx, documentID, termID, at)
		if err != nil {
			return 0, err
		}
		created += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing matches: %w", err)
	}
	return created, nil
}

// missingStamp explains why a stamp update touched no row.
func (s *associationStore) missingStamp(ctx context.Context, tx *sql.Tx, documentID int64) error {
	var exists bool
	err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM documents WHERE id = ?)", documentID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking document: %w", err)
	}
	if !exists {
		return fmt.Errorf("document %d: %w", documentID, domain.ErrNotFound)
	}
	return fmt.Errorf("document %d: %w", documentID, domain.ErrAlreadyMatched)
}

// CreateIfAbsent creates one association.
func (s *associationStore) CreateIfAbsent(ctx context.Context, documentID, termID int64) (bool, error) {
	n, err := insertAssociation(ctx, s.store.db, documentID, termID, formatTime(s.store.now()))
	return n == 1, err
}

// MarkProcessed stamps a document as matched.
func (s *associationStore) MarkProcessed(ctx context.Context, documentID int64, at time.Time) error {
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE documents SET matched_at = ? WHERE id = ?", formatTime(at), documentID)
	if err != nil {
		return fmt.Errorf("marking document processed: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("marking document processed: %w", err)
	} else if n == 0 {
		return fmt.Errorf("document %d: %w", documentID, domain.ErrNotFound)
	}
	return nil
}

// ListMentions returns associations whose document was created at or
// after since, joined with term and document fields.
func (s *associationStore) ListMentions(ctx context.Context, since time.Time, activeOnly bool) ([]domain.Mention, error) {
	query := `
		SELECT pt.term_id, t.text, t.origin, pt.document_id, d.created_at, d.score, d.comments, d.source
		FROM post_terms pt
		JOIN terms t ON t.id = pt.term_id
		JOIN documents d ON d.id = pt.document_id
		WHERE d.created_at >= ?`
	if activeOnly {
		query += " AND t.active = 1"
	}
	query += " ORDER BY pt.document_id, pt.term_id"

	rows, err := s.store.db.QueryContext(ctx, query, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("querying mentions: %w", err)
	}
	defer rows.Close()

	mentions := make([]domain.Mention, 0)
	for rows.Next() {
		var m domain.Mention
		var origin, createdAt string
		if err := rows.Scan(&m.TermID, &m.TermText, &origin, &m.DocumentID,
			&createdAt, &m.Score, &m.Comments, &m.Source); err != nil {
			return nil, fmt.Errorf("scanning mention: %w", err)
		}
		m.Origin = domain.CulturalOrigin(origin)
		m.CreatedAt = parseTime(createdAt)
		mentions = append(mentions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mentions: %w", err)
	}
	return mentions, nil
}

// ListForDocument returns the associations of one document by term id.
func (s *associationStore) ListForDocument(ctx context.Context, documentID int64) ([]domain.Association, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT document_id, term_id, created_at FROM post_terms WHERE document_id = ? ORDER BY term_id",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("querying associations: %w", err)
	}
	defer rows.Close()

	assocs := make([]domain.Association, 0)
	for rows.Next() {
		var a domain.Association
		var createdAt string
		if err := rows.Scan(&a.DocumentID, &a.TermID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning association: %w", err)
		}
		a.CreatedAt = parseTime(createdAt)
		assocs = append(assocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating associations: %w", err)
	}
	return assocs, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertAssociation inserts one association unless it exists and returns
// the number of rows created.
func insertAssociation(ctx context.Context, db execer, documentID, termID int64, at string) (int, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO post_terms (document_id, term_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT(document_id, term_id) DO NOTHING
	`, documentID, termID, at)
	if err != nil {
		return 0, fmt.Errorf("inserting association %d/%d: %w", documentID, termID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("inserting association %d/%d: %w", documentID, termID, err)
	}
	return int(n), nil
}

// ==================== Helper Functions ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocumentFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

func scanDocumentFrom(row scanner) (*domain.Document, error) {
	var doc domain.Document
	var createdAt, fetchedAt string
	var matchedAt sql.NullString

	if err := row.Scan(&doc.ID, &doc.ExternalID, &doc.Source, &doc.Title, &doc.Body,
		&createdAt, &doc.Score, &doc.Comments, &matchedAt, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.CreatedAt = parseTime(createdAt)
	doc.FetchedAt = parseTime(fetchedAt)
	if matchedAt.Valid {
		t := parseTime(matchedAt.String)
		doc.MatchedAt = &t
	}
	return &doc, nil
}

// scanTerm scans a single term row.
func scanTerm(row *sql.Row) (*domain.Term, error) {
	term, err := scanTermFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return term, err
}

func scanTermFrom(row scanner) (*domain.Term, error) {
	var term domain.Term
	var active int
	var origin string

	if err := row.Scan(&term.ID, &term.Text, &active, &origin, &term.OriginConfidence); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning term: %w", err)
	}
	term.Active = active == 1
	term.Origin = domain.CulturalOrigin(origin)
	return &term, nil
}

// formatTime renders t in UTC with the fixed-width layout.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// parseTime parses a stored timestamp, returning zero time on bad input.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
