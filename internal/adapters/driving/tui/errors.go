package tui

import "errors"

// ErrMissingTrendService is returned when the trend service is not provided.
var ErrMissingTrendService = errors.New("tui: trend service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingPostService is returned when the post service is not provided.
var ErrMissingPostService = errors.New("tui: post service is required")
