package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driving"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService pulls posts from sources into the document store.
type IngestService struct {
	docStore   driven.DocumentStore
	sources    []driven.PostSource
	matcher    driving.MatchingService
	matchLimit int
	now        func() time.Time
}

// NewIngestService creates an ingest service over the given sources.
// The matcher is optional; without it Ingest never runs matching.
func NewIngestService(
	docStore driven.DocumentStore,
	matcher driving.MatchingService,
	matchLimit int,
	sources ...driven.PostSource,
) *IngestService {
	return &IngestService{
		docStore:   docStore,
		sources:    sources,
		matcher:    matcher,
		matchLimit: matchLimit,
		now:        time.Now,
	}
}

// Ingest fetches every source in turn and stores the posts.
// A failing source is recorded in the report and the others still run.
// An error is returned only when every source failed or a store write
// failed. With match set, a matching run follows a successful ingest.
func (s *IngestService) Ingest(ctx context.Context, match bool) (domain.IngestReport, error) {
	logger.Section("Ingest")
	report := domain.IngestReport{Failed: make(map[string]string)}

	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		docs, err := src.Fetch(ctx)
		if err != nil {
			logger.Warn("Source %s failed: %v", src.Name(), err)
			report.Failed[src.Name()] = err.Error()
			continue
		}
		report.Fetched += len(docs)

		inserted := 0
		for i := range docs {
			doc := docs[i]
			if doc.FetchedAt.IsZero() {
				doc.FetchedAt = s.now().UTC()
			}
			created, err := s.docStore.Save(ctx, &doc)
			if err != nil {
				return report, fmt.Errorf("save document %s: %w", doc.ExternalID, err)
			}
			if created {
				inserted++
				continue
			}
			report.Updated++
		}
		report.Inserted += inserted
		logger.Info("[%s] fetched %d, inserted %d", src.Name(), len(docs), inserted)
	}

	if len(s.sources) > 0 && len(report.Failed) == len(s.sources) {
		return report, fmt.Errorf("%w: all %d sources failed", domain.ErrSourceUnavailable, len(s.sources))
	}

	if match && s.matcher != nil {
		mr, err := s.matcher.Run(ctx, domain.MatchOptions{Limit: s.matchLimit})
		if err != nil {
			return report, fmt.Errorf("match ingested documents: %w", err)
		}
		report.Matching = &mr
	}

	return report, nil
}
