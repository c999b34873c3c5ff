package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Ensure MatchingService implements the interface.
var _ driving.MatchingService = (*MatchingService)(nil)

// DefaultMatchLimit is the candidate cap callers apply when the user
// gives no limit.
const DefaultMatchLimit = 500

// MatchingService attaches vocabulary terms to documents.
// Runs are serialized: at most one run writes associations at a time.
type MatchingService struct {
	termStore  driven.TermStore
	docStore   driven.DocumentStore
	assocStore driven.AssociationStore
	builder    *TermIndexBuilder
	now        func() time.Time
	mu         sync.Mutex
}

// NewMatchingService creates a matching service.
func NewMatchingService(
	termStore driven.TermStore,
	docStore driven.DocumentStore,
	assocStore driven.AssociationStore,
	settings domain.MatchingSettings,
) *MatchingService {
	return &MatchingService{
		termStore:  termStore,
		docStore:   docStore,
		assocStore: assocStore,
		builder:    NewTermIndexBuilder(settings),
		now:        time.Now,
	}
}

// SetClock overrides the time source used to stamp processed documents.
func (s *MatchingService) SetClock(now func() time.Time) {
	s.now = now
}

// Run matches candidate documents against the active vocabulary.
//
// The index is built once at the start of the run. Each candidate is
// committed on its own: its new associations and its processed stamp are
// written together, so a failure part-way leaves earlier documents
// committed and later ones untouched.
func (s *MatchingService) Run(ctx context.Context, opts domain.MatchOptions) (domain.MatchReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startedAt := s.now().UTC()
	report := domain.MatchReport{StartedAt: startedAt}

	logger.Section("Term Matching")
	logger.Debug("Limit: %d, Force: %t, Subset: %d", opts.Limit, opts.Force, len(opts.DocumentIDs))

	if opts.Limit < 0 {
		return report, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidInput)
	}

	terms, err := s.termStore.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("list active terms: %w", err)
	}
	idx := s.builder.Build(terms)
	report.ActiveTerms = idx.Size()
	logger.Debug("Index: %d singles, %d phrases, %d rejected",
		idx.Size()-idx.PhraseCount(), idx.PhraseCount(), idx.Rejected())

	docs, err := s.docStore.ListForMatching(ctx, domain.DocumentQuery{
		UnprocessedOnly: !opts.Force,
		IDs:             opts.DocumentIDs,
		Limit:           opts.Limit,
	})
	if err != nil {
		return report, fmt.Errorf("list documents for matching: %w", err)
	}
	logger.Debug("Candidates: %d documents", len(docs))

	for i := range docs {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(startedAt)
			return report, err
		}

		doc := &docs[i]
		normalized := Normalize(doc.Text())
		if normalized == "" {
			report.EmptyDocuments++
		}

		termIDs := sortedIDs(idx.Match(normalized))
		created, err := s.assocStore.RecordMatches(ctx, doc.ID, termIDs, startedAt, opts.Force)
		if errors.Is(err, domain.ErrAlreadyMatched) {
			logger.Debug("Document %d was matched by another run, skipping", doc.ID)
			continue
		}
		if err != nil {
			report.Duration = time.Since(startedAt)
			return report, fmt.Errorf("record matches for document %d: %w", doc.ID, err)
		}

		report.Created += created
		report.DocumentsProcessed++
	}

	report.Duration = time.Since(startedAt)
	logger.Info("Processed %d documents, created %d associations", report.DocumentsProcessed, report.Created)

	return report, nil
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
