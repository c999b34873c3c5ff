package driven

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// DocumentStore persists ingested posts.
type DocumentStore interface {
	// Save inserts a document keyed by ExternalID, or refreshes the
	// engagement counters of the existing one. MatchedAt, title, body
	// and CreatedAt of an existing document are never changed.
	// Reports whether a new row was created. The document's ID is set on return.
	Save(ctx context.Context, doc *domain.Document) (bool, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// GetByExternalID retrieves a document by its platform identifier.
	GetByExternalID(ctx context.Context, externalID string) (*domain.Document, error)

	// ListForMatching returns matching candidates ordered by CreatedAt descending.
	ListForMatching(ctx context.Context, query domain.DocumentQuery) ([]domain.Document, error)

	// ListInWindow returns documents created at or after query.Since,
	// optionally restricted to those associated with query.TermID.
	ListInWindow(ctx context.Context, query domain.WindowQuery) ([]domain.Document, error)

	// ListRecent returns the newest documents by CreatedAt.
	ListRecent(ctx context.Context, limit int) ([]domain.Document, error)

	// Delete removes a document and, transitively, its associations.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)
}
