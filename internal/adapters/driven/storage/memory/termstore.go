package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

// Ensure TermStore implements the interface.
var _ driven.TermStore = (*TermStore)(nil)

// TermStore is the term view of a Store.
type TermStore struct {
	s *Store
}

// ListActive returns all active terms ordered by text.
func (t *TermStore) ListActive(ctx context.Context) ([]domain.Term, error) {
	return t.List(ctx, domain.TermFilter{})
}

// FindActiveByText looks a term up case-insensitively.
// Missing and inactive terms both return domain.ErrNotFound.
func (t *TermStore) FindActiveByText(_ context.Context, text string) (*domain.Term, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	id, ok := t.s.byText[domain.CanonicalTermText(text)]
	if !ok || !t.s.terms[id].Active {
		return nil, domain.ErrNotFound
	}
	term := *t.s.terms[id]
	return &term, nil
}

// Save inserts a term or updates the existing term with the same text.
// On return term.ID is set; created reports whether a new term was added.
func (t *TermStore) Save(_ context.Context, term *domain.Term) (bool, error) {
	text := domain.CanonicalTermText(term.Text)
	if text == "" {
		return false, fmt.Errorf("%w: term text is empty", domain.ErrInvalidInput)
	}
	term.Text = text
	term.Origin = term.Origin.OrDefault()

	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if id, ok := t.s.byText[text]; ok {
		term.ID = id
		stored := *term
		t.s.terms[id] = &stored
		return false, nil
	}

	t.s.nextTermID++
	term.ID = t.s.nextTermID
	stored := *term
	t.s.terms[term.ID] = &stored
	t.s.byText[text] = term.ID
	return true, nil
}

// Get retrieves a term by ID.
func (t *TermStore) Get(_ context.Context, id int64) (*domain.Term, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	stored, ok := t.s.terms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	term := *stored
	return &term, nil
}

// GetByText retrieves a term by text regardless of its active flag.
func (t *TermStore) GetByText(_ context.Context, text string) (*domain.Term, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	id, ok := t.s.byText[domain.CanonicalTermText(text)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	term := *t.s.terms[id]
	return &term, nil
}

// List returns terms matching filter ordered by text.
func (t *TermStore) List(_ context.Context, filter domain.TermFilter) ([]domain.Term, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]domain.Term, 0, len(t.s.terms))
	for _, term := range t.s.terms {
		if !filter.IncludeInactive && !term.Active {
			continue
		}
		if filter.Origin != "" && term.Origin != filter.Origin {
			continue
		}
		out = append(out, *term)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
	return out, nil
}

// SetActive updates a term's active flag.
func (t *TermStore) SetActive(_ context.Context, id int64, active bool) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	term, ok := t.s.terms[id]
	if !ok {
		return domain.ErrNotFound
	}
	term.Active = active
	return nil
}

// Delete removes a term and its associations.
func (t *TermStore) Delete(_ context.Context, id int64) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	term, ok := t.s.terms[id]
	if !ok {
		return nil
	}
	t.s.dropTerm(id)
	delete(t.s.byText, term.Text)
	delete(t.s.terms, id)
	return nil
}
