package inbound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/usecase"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgrouter"
)

const (
	contentTypeSVG  = "image/svg+xml"
	contentTypeText = "text/plain; charset=utf-8"
	defaultFileName = "access.log"
)

type HTTPEndpoint struct {
	coordinator coordinator
	pipeline    pipeline
	charts      charts
	blobs       blobs
	maxBytes    int64
}

func (h *HTTPEndpoint) Select(ctx context.Context, r *http.Request) (any, error) {
	file, ok, err := h.extractFile(r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerror.NewInvalidInput(errors.New("file is required"))
	}

	h.coordinator.Select(file)

	return SelectionResponse{Name: file.Name, Size: len(file.Data)}, nil
}

// Upload selects the file carried by the request, if any, then uploads the
// current selection.
func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	file, ok, err := h.extractFile(r)
	if err != nil {
		return nil, err
	}
	if ok {
		h.coordinator.Select(file)
	}

	result, err := h.coordinator.Upload(ctx)
	if errors.Is(err, usecase.ErrUpload) {
		return nil, pkgerror.NewUpstream(err, "failed to upload log file")
	}
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}

	if result.Skipped {
		return NothingSelectedResponse{}, nil
	}

	return UploadResponse{Key: result.Ref.Key, URL: result.Ref.URL}, nil
}

func (h *HTTPEndpoint) Frequencies(ctx context.Context, r *http.Request) (any, error) {
	status := h.pipeline.Status()

	resp := FrequenciesResponse{
		State:     status.State,
		Outcome:   status.Outcome,
		LastError: status.LastError,
		Labels:    []string{},
		Values:    []int{},
		token:     status.Token,
	}

	if snap := status.Latest; snap != nil {
		freq := snap.Result.Frequencies
		for _, label := range freq.Labels() {
			resp.Labels = append(resp.Labels, string(label))
		}
		resp.Values = append(resp.Values, freq.Values()...)
		resp.TotalLines = snap.Result.TotalLines
		resp.Matched = snap.Result.Matched
		resp.Skipped = snap.Result.Skipped
		resp.RunID = snap.RunID
		resp.URL = snap.URL
		publishedAt := snap.PublishedAt
		resp.PublishedAt = &publishedAt
	}

	return resp, nil
}

func (h *HTTPEndpoint) BarChart(ctx context.Context, r *http.Request) (any, error) {
	return svgResponse(h.charts.Bar())
}

func (h *HTTPEndpoint) PieChart(ctx context.Context, r *http.Request) (any, error) {
	return svgResponse(h.charts.Pie())
}

func svgResponse(svg []byte, ok bool) (any, error) {
	if !ok {
		return nil, pkgerror.NewBusiness("no chart has been drawn", pkgerror.CodeNotFound)
	}
	return pkgrouter.Raw{ContentType: contentTypeSVG, Body: svg}, nil
}

func (h *HTTPEndpoint) Blob(ctx context.Context, r *http.Request) (any, error) {
	key := pkgrouter.GetParam(ctx, "key")
	if key == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("key is required"))
	}

	data, err := h.blobs.Open(ctx, key)
	if errors.Is(err, pkgerror.ErrNotFound) {
		return nil, pkgerror.NewBusiness("blob not found", pkgerror.CodeNotFound)
	}
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}

	return pkgrouter.Raw{ContentType: contentTypeText, Body: data}, nil
}

// extractFile reads a multipart "file" part or, failing that, the raw body.
// ok is false when the request carries no file at all.
func (h *HTTPEndpoint) extractFile(r *http.Request) (entity.File, bool, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return h.extractMultipartFile(r)
		}
	}

	if r.Body == nil || r.Body == http.NoBody {
		return entity.File{}, false, nil
	}

	data, err := h.readLimited(r.Body)
	if err != nil {
		return entity.File{}, false, err
	}
	if len(data) == 0 {
		return entity.File{}, false, nil
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = defaultFileName
	}

	return entity.File{Name: name, Data: data}, true, nil
}

func (h *HTTPEndpoint) extractMultipartFile(r *http.Request) (entity.File, bool, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return entity.File{}, false, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return entity.File{}, false, nil
			}
			return entity.File{}, false, pkgerror.NewInvalidFormat()
		}

		if part.FormName() != "file" {
			_ = part.Close()
			continue
		}

		data, err := h.readLimited(part)
		_ = part.Close()
		if err != nil {
			return entity.File{}, false, err
		}

		name := part.FileName()
		if name == "" {
			name = defaultFileName
		}

		return entity.File{Name: name, Data: data}, true, nil
	}
}

func (h *HTTPEndpoint) readLimited(src io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(src, h.maxBytes+1))
	if err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}
	if int64(len(data)) > h.maxBytes {
		return nil, pkgerror.NewInvalidInput(fmt.Errorf("file exceeds %d bytes", h.maxBytes))
	}
	return data, nil
}
