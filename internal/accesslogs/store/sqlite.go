package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/pkg/pkgerror"
)

// Blob is the gorm model backing the sqlite driver.
type Blob struct {
	BlobKey   string `gorm:"primaryKey;size:255"`
	Data      []byte
	CreatedAt time.Time
}

func (Blob) TableName() string {
	return "blobs"
}

type SQLiteDriver struct {
	db    *gorm.DB
	owned bool
}

// NewSQLite uses an existing handle; the caller keeps ownership of it.
func NewSQLite(db *gorm.DB) (*SQLiteDriver, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite store requires database handle")
	}
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("auto migrate blobs: %w", err)
	}
	return &SQLiteDriver{db: db}, nil
}

// OpenSQLite opens the database at path and closes it on Close.
func OpenSQLite(path string) (*SQLiteDriver, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s, err := NewSQLite(db)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	s.owned = true

	return s, nil
}

func (s *SQLiteDriver) Put(ctx context.Context, key string, data []byte) error {
	record := &Blob{BlobKey: key, Data: data, CreatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(record).
		Error
}

func (s *SQLiteDriver) Get(ctx context.Context, key string) ([]byte, error) {
	var record Blob
	err := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: blob %s", pkgerror.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return record.Data, nil
}

func (s *SQLiteDriver) Close(context.Context) error {
	if !s.owned {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
