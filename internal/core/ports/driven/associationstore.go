package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// AssociationStore persists (document, term) matches.
type AssociationStore interface {
	// RecordMatches creates every absent association between documentID
	// and termIDs and stamps the document's MatchedAt with matchedAt.
	// Both effects are applied as one atomic unit: on error neither is
	// visible. Existing associations keep their original CreatedAt.
	// Returns the number of associations newly created.
	// Unless force is set, a document that already carries a stamp is
	// left untouched and domain.ErrAlreadyMatched is returned.
	RecordMatches(
		ctx context.Context, documentID int64, termIDs []int64, matchedAt time.Time, force bool,
	) (int, error)

	// CreateIfAbsent creates a single association.
	// Reports whether it was created; an existing pair is not an error.
	CreateIfAbsent(ctx context.Context, documentID, termID int64) (bool, error)

	// MarkProcessed stamps a document's MatchedAt.
	MarkProcessed(ctx context.Context, documentID int64, at time.Time) error

	// ListMentions returns every association whose document was created
	// at or after since, joined with term and document fields.
	// When activeOnly is set, associations of inactive terms are omitted.
	ListMentions(ctx context.Context, since time.Time, activeOnly bool) ([]domain.Mention, error)

	// ListForDocument returns the associations of one document.
	ListForDocument(ctx context.Context, documentID int64) ([]domain.Association, error)
}
