package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

// BlobPath is the route prefix under which stored blobs are served.
const BlobPath = "/blobs/"

// BlobStore stores uploads in a driver and hands out URLs that point back at
// the blob endpoint.
type BlobStore struct {
	driver  Driver
	baseURL string
	client  *http.Client
}

func NewBlobStore(driver Driver, baseURL string, client *http.Client) *BlobStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &BlobStore{
		driver:  driver,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// URL returns the fetchable address of key.
func (b *BlobStore) URL(key string) string {
	return b.baseURL + BlobPath + url.PathEscape(key)
}

func (b *BlobStore) Store(ctx context.Context, key string, data []byte) (string, error) {
	if err := b.driver.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("store blob %s: %w", key, err)
	}
	return b.URL(key), nil
}

// Open reads a blob by key.
func (b *BlobStore) Open(ctx context.Context, key string) ([]byte, error) {
	return b.driver.Get(ctx, key)
}

// Fetch reads the content behind rawURL. URLs this store handed out are read
// from the driver; anything else is fetched over HTTP.
func (b *BlobStore) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if key, ok := b.localKey(rawURL); ok {
		return b.driver.Get(ctx, key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", pkgerror.ErrNotFound, rawURL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (b *BlobStore) localKey(rawURL string) (string, bool) {
	prefix := b.baseURL + BlobPath
	if !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}

	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, prefix))
	if err != nil || key == "" || strings.ContainsAny(key, "/?#") {
		return "", false
	}

	return key, true
}

func (b *BlobStore) Close(ctx context.Context) error {
	return b.driver.Close(ctx)
}
