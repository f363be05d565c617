package usecase

import "github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"

type UploadResult struct {
	// Skipped is true when Upload was called with no file selected. Nothing
	// was stored and no event was emitted.
	Skipped bool
	Ref     entity.UploadedFileRef
}

type PipelineStatus struct {
	State entity.PipelineState
	// Outcome is how the latest run ended: PUBLISHED, FAILED, or empty
	// before any run finished.
	Outcome   entity.PipelineState
	Token     uint64
	Latest    *entity.Snapshot
	LastError string
}
