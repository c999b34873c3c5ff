package domain

// IngestReport summarises an ingestion run across post sources.
type IngestReport struct {
	// Fetched is the number of posts returned by sources.
	Fetched int

	// Inserted is the number of posts that were new to the store.
	Inserted int

	// Updated is the number of known posts whose engagement was refreshed.
	Updated int

	// Failed lists sources that returned an error, with the message.
	Failed map[string]string

	// Matching is set when a matching run followed the ingest.
	Matching *MatchReport
}
