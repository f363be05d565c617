package entity

type PipelineState string

const (
	PipelineStateIdle        PipelineState = "IDLE"
	PipelineStateFetching    PipelineState = "FETCHING"
	PipelineStateAggregating PipelineState = "AGGREGATING"
	PipelineStatePublished   PipelineState = "PUBLISHED"
	PipelineStateFailed      PipelineState = "FAILED"
)
