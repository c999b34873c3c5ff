package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
)

// Ensure PostService implements the interface.
var _ driving.PostService = (*PostService)(nil)

// PostService reads stored posts.
type PostService struct {
	docStore   driven.DocumentStore
	termStore  driven.TermStore
	assocStore driven.AssociationStore
}

// NewPostService creates a post service.
func NewPostService(
	docStore driven.DocumentStore,
	termStore driven.TermStore,
	assocStore driven.AssociationStore,
) *PostService {
	return &PostService{
		docStore:   docStore,
		termStore:  termStore,
		assocStore: assocStore,
	}
}

// Recent returns the newest posts first. A non-positive limit means 20.
func (s *PostService) Recent(ctx context.Context, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = 20
	}
	docs, err := s.docStore.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent documents: %w", err)
	}
	return docs, nil
}

// Tags returns the sorted texts of the terms matched in a document.
func (s *PostService) Tags(ctx context.Context, documentID int64) ([]string, error) {
	assocs, err := s.assocStore.ListForDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list associations: %w", err)
	}

	tags := make([]string, 0, len(assocs))
	for _, a := range assocs {
		term, err := s.termStore.Get(ctx, a.TermID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get term %d: %w", a.TermID, err)
		}
		tags = append(tags, term.Text)
	}
	sort.Strings(tags)
	return tags, nil
}
