package domain

import "time"

// Document represents an ingested post.
// Title, body, timestamps and engagement are owned by ingestion; the
// matching engine only ever writes MatchedAt.
type Document struct {
	// ID is the store-assigned identifier.
	ID int64

	// ExternalID is the immutable identifier from the origin platform
	// (e.g. the reddit post id). Unique across the store.
	ExternalID string

	// Source is the group the post was published in (e.g. a subreddit).
	Source string

	// Title is the post title. May be empty.
	Title string

	// Body is the post body text. May be empty.
	Body string

	// CreatedAt is when the post was published (UTC).
	CreatedAt time.Time

	// Score is the platform score (upvotes).
	Score int

	// Comments is the number of comments.
	Comments int

	// MatchedAt is when term matching last processed this document.
	// Nil until the first matching run reaches it.
	MatchedAt *time.Time

	// FetchedAt is when the post was first stored.
	FetchedAt time.Time
}

// IsProcessed reports whether term matching has processed the document.
func (d *Document) IsProcessed() bool {
	return d.MatchedAt != nil
}

// Text returns the title and body joined by a single space.
func (d *Document) Text() string {
	return d.Title + " " + d.Body
}

// DocumentQuery selects candidate documents for a matching run.
// Results are always ordered by CreatedAt descending.
type DocumentQuery struct {
	// UnprocessedOnly restricts results to documents with no MatchedAt.
	UnprocessedOnly bool

	// IDs restricts results to a subset of documents. Empty means all.
	IDs []int64

	// Limit caps the number of documents returned. Zero means no cap.
	Limit int
}

// WindowQuery selects documents created at or after Since.
type WindowQuery struct {
	// Since is the inclusive lower bound on CreatedAt.
	Since time.Time

	// TermID, when non-zero, restricts results to documents
	// associated with that term.
	TermID int64
}
