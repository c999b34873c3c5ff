package main

import (
	"github.com/custodia-labs/foodtrend/internal/connectors/reddit"
	"github.com/custodia-labs/foodtrend/internal/core/domain"
	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
)

// redditSources builds the scheduled ingest sources from settings.
func redditSources(settings domain.AppSettings) []driven.PostSource {
	client := reddit.NewClient(reddit.Options{
		UserAgent:         settings.Ingest.UserAgent,
		RequestsPerSecond: settings.Ingest.RequestsPerSecond,
	})
	return reddit.NewSources(client, settings.Ingest.Subreddits, settings.Ingest.Limit)
}
