package memory

import (
	"context"
	"fmt"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is the document view of a Store.
type DocumentStore struct {
	s *Store
}

// Save inserts a document or refreshes the engagement counters of the
// stored document with the same external id. Content, timestamps and
// MatchedAt of a stored document are never changed.
func (d *DocumentStore) Save(_ context.Context, doc *domain.Document) (bool, error) {
	if doc.ExternalID == "" {
		return false, fmt.Errorf("%w: document external id is empty", domain.ErrInvalidInput)
	}

	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if id, ok := d.s.byExternal[doc.ExternalID]; ok {
		stored := d.s.docs[id]
		stored.Score = doc.Score
		stored.Comments = doc.Comments
		doc.ID = id
		return false, nil
	}

	d.s.nextDocID++
	doc.ID = d.s.nextDocID
	doc.CreatedAt = doc.CreatedAt.UTC()
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = d.s.now().UTC()
	}
	stored := copyDocument(doc)
	d.s.docs[doc.ID] = &stored
	d.s.byExternal[doc.ExternalID] = doc.ID
	return true, nil
}

// Get retrieves a document by ID.
func (d *DocumentStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	stored, ok := d.s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := copyDocument(stored)
	return &doc, nil
}

// GetByExternalID retrieves a document by its origin-platform id.
func (d *DocumentStore) GetByExternalID(ctx context.Context, externalID string) (*domain.Document, error) {
	d.s.mu.RLock()
	id, ok := d.s.byExternal[externalID]
	d.s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d.Get(ctx, id)
}

// ListForMatching returns candidate documents, newest first.
func (d *DocumentStore) ListForMatching(_ context.Context, q domain.DocumentQuery) ([]domain.Document, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	var subset map[int64]struct{}
	if len(q.IDs) > 0 {
		subset = make(map[int64]struct{}, len(q.IDs))
		for _, id := range q.IDs {
			subset[id] = struct{}{}
		}
	}

	out := make([]domain.Document, 0)
	for id, doc := range d.s.docs {
		if q.UnprocessedOnly && doc.MatchedAt != nil {
			continue
		}
		if subset != nil {
			if _, ok := subset[id]; !ok {
				continue
			}
		}
		out = append(out, copyDocument(doc))
	}
	sortNewestFirst(out)

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// ListInWindow returns documents created at or after q.Since, newest first.
// With q.TermID set only documents associated with that term are returned.
func (d *DocumentStore) ListInWindow(_ context.Context, q domain.WindowQuery) ([]domain.Document, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	out := make([]domain.Document, 0)
	add := func(doc *domain.Document) {
		if !doc.CreatedAt.Before(q.Since) {
			out = append(out, copyDocument(doc))
		}
	}

	if q.TermID != 0 {
		for _, id := range d.s.postingIDs(q.TermID) {
			if doc, ok := d.s.docs[id]; ok {
				add(doc)
			}
		}
	} else {
		for _, doc := range d.s.docs {
			add(doc)
		}
	}

	sortNewestFirst(out)
	return out, nil
}

// ListRecent returns up to limit documents, newest first.
func (d *DocumentStore) ListRecent(ctx context.Context, limit int) ([]domain.Document, error) {
	return d.ListForMatching(ctx, domain.DocumentQuery{Limit: limit})
}

// Delete removes a document and its associations.
func (d *DocumentStore) Delete(_ context.Context, id int64) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	doc, ok := d.s.docs[id]
	if !ok {
		return nil
	}
	d.s.dropDocument(id)
	delete(d.s.byExternal, doc.ExternalID)
	delete(d.s.docs, id)
	return nil
}

// Count returns the number of stored documents.
func (d *DocumentStore) Count(_ context.Context) (int, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	return len(d.s.docs), nil
}
