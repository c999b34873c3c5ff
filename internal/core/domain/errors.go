package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search query with no searchable tokens.
	// Services return empty results; request layers report this error.
	ErrEmptyQuery = errors.New("missing query")

	// ErrAlreadyMatched indicates a document was stamped by another
	// matching run after it was selected.
	ErrAlreadyMatched = errors.New("already matched")

	// ErrUnsupportedType indicates an unknown post source type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Ingestion Errors.

	// ErrSourceUnavailable indicates a post source returned an unusable response.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
