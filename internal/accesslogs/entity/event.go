package entity

// URLReadyEvent is emitted once an uploaded file is reachable by URL.
type URLReadyEvent struct {
	EventID string
	Key     string
	URL     string
}

// EventKey identifies the event for duplicate suppression.
func (e URLReadyEvent) EventKey() string {
	return e.EventID
}

// PublishedEvent carries a snapshot from the pipeline to presenters.
type PublishedEvent struct {
	EventID  string
	Snapshot Snapshot
}

// EventKey identifies the event for duplicate suppression.
func (e PublishedEvent) EventKey() string {
	return e.EventID
}
