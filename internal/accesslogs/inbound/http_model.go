package inbound

import (
	"net/http"
	"time"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
)

type SelectionResponse struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func (SelectionResponse) Message() string {
	return "file selected"
}

type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (UploadResponse) StatusCode() int {
	return http.StatusAccepted
}

func (UploadResponse) Message() string {
	return "upload accepted"
}

// NothingSelectedResponse answers an upload request made with no file.
type NothingSelectedResponse struct{}

func (NothingSelectedResponse) StatusCode() int {
	return http.StatusNoContent
}

type FrequenciesResponse struct {
	State       entity.PipelineState `json:"state"`
	Outcome     entity.PipelineState `json:"outcome,omitempty"`
	LastError   string               `json:"last_error,omitempty"`
	Labels      []string             `json:"labels"`
	Values      []int                `json:"values"`
	TotalLines  int                  `json:"total_lines"`
	Matched     int                  `json:"matched"`
	Skipped     int                  `json:"skipped"`
	RunID       int64                `json:"run_id,omitempty"`
	URL         string               `json:"url,omitempty"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	token       uint64
}

func (r FrequenciesResponse) Meta() map[string]any {
	return map[string]any{
		"token": r.token,
	}
}
