package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// phraseEntry is a multi-word term in normalized form.
type phraseEntry struct {
	normalized string
	termID     int64
}

// TermIndex is a lookup structure over the active vocabulary.
// It is immutable once built and safe for concurrent use.
type TermIndex struct {
	singles  map[string]int64
	phrases  []phraseEntry
	rejected int
}

// TermIndexBuilder builds a TermIndex with a fixed stoplist and
// minimum term length.
type TermIndexBuilder struct {
	minLength int
	stop      map[string]struct{}
}

// NewTermIndexBuilder creates a builder from matching settings.
// A non-positive MinTermLength falls back to the default.
func NewTermIndexBuilder(settings domain.MatchingSettings) *TermIndexBuilder {
	minLength := settings.MinTermLength
	if minLength <= 0 {
		minLength = domain.DefaultMatchingSettings().MinTermLength
	}
	stop := make(map[string]struct{}, len(settings.StopTerms))
	for _, s := range settings.StopTerms {
		stop[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return &TermIndexBuilder{minLength: minLength, stop: stop}
}

// Accepts reports whether a term text is eligible for matching.
// Rejected are texts shorter than the minimum length, stop terms and
// purely numeric texts.
func (b *TermIndexBuilder) Accepts(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if len(t) < b.minLength {
		return false
	}
	if _, stopped := b.stop[t]; stopped {
		return false
	}
	return !isNumeric(t)
}

// Build indexes the given terms. Inactive terms are ignored.
func (b *TermIndexBuilder) Build(terms []domain.Term) *TermIndex {
	idx := &TermIndex{singles: make(map[string]int64, len(terms))}

	for i := range terms {
		term := &terms[i]
		if !term.Active {
			continue
		}
		raw := strings.TrimSpace(term.Text)
		if raw == "" {
			continue
		}
		if !b.Accepts(raw) {
			idx.rejected++
			continue
		}

		if strings.Contains(raw, " ") {
			normalized := Normalize(raw)
			if normalized == "" {
				idx.rejected++
				continue
			}
			idx.phrases = append(idx.phrases, phraseEntry{normalized: normalized, termID: term.ID})
			continue
		}
		idx.singles[strings.ToLower(raw)] = term.ID
	}

	sort.SliceStable(idx.phrases, func(i, j int) bool {
		a, b := idx.phrases[i], idx.phrases[j]
		if len(a.normalized) != len(b.normalized) {
			return len(a.normalized) > len(b.normalized)
		}
		return a.normalized < b.normalized
	})

	return idx
}

// Size returns the number of indexed terms.
func (idx *TermIndex) Size() int {
	return len(idx.singles) + len(idx.phrases)
}

// PhraseCount returns the number of indexed phrase terms.
func (idx *TermIndex) PhraseCount() int {
	return len(idx.phrases)
}

// Rejected returns how many active terms failed the eligibility filter.
func (idx *TermIndex) Rejected() int {
	return idx.rejected
}

// Match returns the ids of every indexed term occurring in normalized
// text. Phrase terms match on whole-token boundaries; single terms match
// any token. The text must already be normalized.
func (idx *TermIndex) Match(normalized string) map[int64]struct{} {
	matched := make(map[int64]struct{})
	if normalized == "" {
		return matched
	}

	padded := " " + normalized + " "
	for _, p := range idx.phrases {
		if strings.Contains(padded, " "+p.normalized+" ") {
			matched[p.termID] = struct{}{}
		}
	}

	if len(idx.singles) == 0 {
		return matched
	}
	for _, tok := range strings.Split(normalized, " ") {
		if id, ok := idx.singles[tok]; ok {
			matched[id] = struct{}{}
		}
	}
	return matched
}

// MatchDocument normalizes the document title and body and matches them.
func (idx *TermIndex) MatchDocument(doc *domain.Document) map[int64]struct{} {
	return idx.Match(Normalize(doc.Text()))
}
