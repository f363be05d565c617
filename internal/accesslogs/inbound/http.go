package inbound

import (
	"context"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/usecase"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgrouter"
)

// DefaultMaxUploadBytes caps a single uploaded log when no limit is configured.
const DefaultMaxUploadBytes int64 = 32 << 20

type coordinator interface {
	Select(file entity.File)
	Upload(ctx context.Context) (usecase.UploadResult, error)
}

type pipeline interface {
	Status() usecase.PipelineStatus
}

type charts interface {
	Bar() ([]byte, bool)
	Pie() ([]byte, bool)
}

type blobs interface {
	Open(ctx context.Context, key string) ([]byte, error)
}

type Dependency struct {
	Coordinator    coordinator
	Pipeline       pipeline
	Charts         charts
	Blobs          blobs
	MaxUploadBytes int64
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, dep Dependency) {
	maxBytes := dep.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	end := &HTTPEndpoint{
		coordinator: dep.Coordinator,
		pipeline:    dep.Pipeline,
		charts:      dep.Charts,
		blobs:       dep.Blobs,
		maxBytes:    maxBytes,
	}

	r.PUT("/selection", end.Select) // multipart "file" or raw body + ?name=
	r.POST("/uploads", end.Upload)

	r.GET("/frequencies", end.Frequencies)
	r.GET("/charts/bar.svg", end.BarChart)
	r.GET("/charts/pie.svg", end.PieChart)
	r.GET("/blobs/:key", end.Blob)
}
