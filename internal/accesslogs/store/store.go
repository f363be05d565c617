package store

import (
	"context"
	"time"
)

// Driver persists raw blobs by key.
type Driver interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns pkgerror.ErrNotFound (wrapped) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Close(ctx context.Context) error
}

// Config describes the blob store selection parameters.
type Config struct {
	Driver  string
	BaseURL string
	Memory  *MemoryConfig
	Disk    *DiskConfig
	Redis   *RedisConfig
	SQLite  *SQLiteConfig
}

// MemoryConfig bounds the in-process driver.
type MemoryConfig struct {
	MaxBlobs int
}

// DiskConfig points the disk driver at a directory.
type DiskConfig struct {
	Dir string
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// SQLiteConfig provides the database file. Ignored when a handle is injected.
type SQLiteConfig struct {
	Path string
}
