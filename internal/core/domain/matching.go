package domain

import "time"

// MatchOptions configures a matching run.
type MatchOptions struct {
	// DocumentIDs restricts the run to a subset of documents.
	// Empty means every document in the store.
	DocumentIDs []int64

	// Limit caps the number of candidate documents. Zero means no cap.
	Limit int

	// Force re-processes documents that were already matched.
	Force bool
}

// MatchReport summarises a matching run.
type MatchReport struct {
	// Created is the number of associations newly created.
	Created int

	// DocumentsProcessed is the number of documents stamped by the run.
	DocumentsProcessed int

	// EmptyDocuments counts processed documents with no text.
	EmptyDocuments int

	// ActiveTerms is the number of terms that made it into the index.
	ActiveTerms int

	// StartedAt is the run timestamp written to each processed document.
	StartedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}
