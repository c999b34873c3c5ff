package driven

import (
	"context"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// TermStore persists the tracked vocabulary.
type TermStore interface {
	// ListActive returns every active term.
	ListActive(ctx context.Context) ([]domain.Term, error)

	// FindActiveByText returns the active term whose text equals text,
	// compared case-insensitively after trimming.
	// Returns domain.ErrNotFound when no such active term exists.
	FindActiveByText(ctx context.Context, text string) (*domain.Term, error)

	// Save inserts a term or updates the existing term with the same text.
	// Reports whether a new row was created. The term's ID is set on return.
	Save(ctx context.Context, term *domain.Term) (bool, error)

	// Get retrieves a term by ID.
	Get(ctx context.Context, id int64) (*domain.Term, error)

	// GetByText retrieves a term by its exact canonical text, active or not.
	GetByText(ctx context.Context, text string) (*domain.Term, error)

	// List returns terms ordered by text.
	List(ctx context.Context, filter domain.TermFilter) ([]domain.Term, error)

	// SetActive activates or deactivates a term.
	// Existing associations are left untouched.
	SetActive(ctx context.Context, id int64, active bool) error

	// Delete removes a term and, transitively, its associations.
	Delete(ctx context.Context, id int64) error
}
