package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

// DiskDriver keeps one file per blob in a flat directory.
type DiskDriver struct {
	dir string
}

func NewDisk(dir string) (*DiskDriver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &DiskDriver{dir: dir}, nil
}

func (s *DiskDriver) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", pkgerror.NewInvalidInput(fmt.Errorf("invalid blob key %q", key))
	}
	return filepath.Join(s.dir, key), nil
}

// Put writes to a temp file and renames it so readers never see a partial blob.
func (s *DiskDriver) Put(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func (s *DiskDriver) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: blob %s", pkgerror.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (s *DiskDriver) Close(context.Context) error {
	return nil
}
