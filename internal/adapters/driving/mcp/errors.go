// Package mcp provides an MCP (Model Context Protocol) server adapter for foodtrend.
// It lets AI assistants query trending terms, cuisines and posts.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingTrendService is returned when the trend service is not provided.
var ErrMissingTrendService = errors.New("mcp: trend service is required")
