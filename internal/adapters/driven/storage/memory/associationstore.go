package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

// Ensure AssociationStore implements the interface.
var _ driven.AssociationStore = (*AssociationStore)(nil)

// AssociationStore is the association view of a Store.
type AssociationStore struct {
	s *Store
}

// RecordMatches creates the absent associations and stamps the document
// in one step. Nothing changes if the document or any term is unknown,
// or if the document is already stamped and force is false.
func (a *AssociationStore) RecordMatches(
	_ context.Context, documentID int64, termIDs []int64, matchedAt time.Time, force bool,
) (int, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	doc, ok := a.s.docs[documentID]
	if !ok {
		return 0, fmt.Errorf("document %d: %w", documentID, domain.ErrNotFound)
	}
	if !force && doc.MatchedAt != nil {
		return 0, fmt.Errorf("document %d: %w", documentID, domain.ErrAlreadyMatched)
	}
	for _, termID := range termIDs {
		if _, ok := a.s.terms[termID]; !ok {
			return 0, fmt.Errorf("term %d: %w", termID, domain.ErrNotFound)
		}
	}

	created := 0
	at := a.s.now().UTC()
	for _, termID := range termIDs {
		if a.s.addPosting(documentID, termID, at) {
			created++
		}
	}
	stamp := matchedAt.UTC()
	doc.MatchedAt = &stamp
	return created, nil
}

// CreateIfAbsent creates one association. It reports false when the
// association already existed.
func (a *AssociationStore) CreateIfAbsent(_ context.Context, documentID, termID int64) (bool, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if _, ok := a.s.docs[documentID]; !ok {
		return false, fmt.Errorf("document %d: %w", documentID, domain.ErrNotFound)
	}
	if _, ok := a.s.terms[termID]; !ok {
		return false, fmt.Errorf("term %d: %w", termID, domain.ErrNotFound)
	}
	return a.s.addPosting(documentID, termID, a.s.now().UTC()), nil
}

// MarkProcessed stamps a document as matched.
func (a *AssociationStore) MarkProcessed(_ context.Context, documentID int64, at time.Time) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	doc, ok := a.s.docs[documentID]
	if !ok {
		return fmt.Errorf("document %d: %w", documentID, domain.ErrNotFound)
	}
	stamp := at.UTC()
	doc.MatchedAt = &stamp
	return nil
}

// ListMentions returns associations whose document was created at or
// after since, joined with term and document fields.
func (a *AssociationStore) ListMentions(_ context.Context, since time.Time, activeOnly bool) ([]domain.Mention, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	out := make([]domain.Mention, 0)
	for termID := range a.s.postings {
		term := a.s.terms[termID]
		if term == nil || (activeOnly && !term.Active) {
			continue
		}
		for _, docID := range a.s.postingIDs(termID) {
			doc := a.s.docs[docID]
			if doc == nil || doc.CreatedAt.Before(since) {
				continue
			}
			out = append(out, domain.Mention{
				TermID:     termID,
				TermText:   term.Text,
				Origin:     term.Origin,
				DocumentID: docID,
				CreatedAt:  doc.CreatedAt,
				Score:      doc.Score,
				Comments:   doc.Comments,
				Source:     doc.Source,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DocumentID != out[j].DocumentID {
			return out[i].DocumentID < out[j].DocumentID
		}
		return out[i].TermID < out[j].TermID
	})
	return out, nil
}

// ListForDocument returns the associations of one document by term id.
func (a *AssociationStore) ListForDocument(_ context.Context, documentID int64) ([]domain.Association, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	out := make([]domain.Association, 0)
	for termID, bm := range a.s.postings {
		if !bm.Contains(uint32(documentID)) {
			continue
		}
		out = append(out, domain.Association{
			DocumentID: documentID,
			TermID:     termID,
			CreatedAt:  a.s.assocAt[assocKey{documentID: documentID, termID: termID}],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TermID < out[j].TermID })
	return out, nil
}
