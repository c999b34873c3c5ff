package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// ImportOptions configures a vocabulary import.
type ImportOptions struct {
	// Inactive imports new terms as inactive.
	Inactive bool

	// DryRun reports what would change without writing.
	DryRun bool
}

// SeedOptions configures seeding the built-in vocabulary.
type SeedOptions struct {
	// DeactivateStops ensures the stop terms exist but are inactive.
	DeactivateStops bool

	// Wipe deletes every existing term first.
	Wipe bool
}

// VocabularyService manages the tracked terms.
type VocabularyService interface {
	// Import reads one term per line ("text" or "text,origin").
	Import(ctx context.Context, r io.Reader, opts ImportOptions) (domain.ImportReport, error)

	// Seed writes the built-in vocabulary.
	Seed(ctx context.Context, opts SeedOptions) (domain.SeedReport, error)

	// List returns terms ordered by text.
	List(ctx context.Context, filter domain.TermFilter) ([]domain.Term, error)

	// SetActive activates or deactivates the term with the given text.
	SetActive(ctx context.Context, text string, active bool) (*domain.Term, error)

	// Candidates proposes frequent n-grams from recent posts.
	Candidates(ctx context.Context, opts domain.CandidateOptions) (domain.CandidateReport, error)
}
