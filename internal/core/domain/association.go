package domain

import "time"

// Association records that a term was found in a document.
// Unique per (DocumentID, TermID); never updated once created.
type Association struct {
	DocumentID int64
	TermID     int64
	CreatedAt  time.Time
}

// Mention is an association joined with the fields the trend
// rankers need from its term and document.
type Mention struct {
	TermID     int64
	TermText   string
	Origin     CulturalOrigin
	DocumentID int64
	CreatedAt  time.Time
	Score      int
	Comments   int
	Source     string
}
