package entity

import "time"

// AggregateResult is the outcome of aggregating one log text.
type AggregateResult struct {
	Frequencies FrequencyMap

	// Line diagnostics. Skipped lines did not match the status-code pattern;
	// a sudden rise usually means the log format changed.
	TotalLines int
	Matched    int
	Skipped    int
}

// Snapshot is a published aggregation. It is shared by reference with
// presenters and must not be modified.
type Snapshot struct {
	RunID       int64
	URL         string
	Result      AggregateResult
	PublishedAt time.Time
}
