package store

import (
	"fmt"

	"gorm.io/gorm"
)

// Driver identifiers accepted in blob.driver.
const (
	DriverMemory = "memory"
	DriverDisk   = "disk"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Dependencies captures external handles required by certain drivers.
type Dependencies struct {
	SQLiteDB *gorm.DB
}

// NewDriver creates a blob driver based on the provided configuration.
func NewDriver(cfg Config, deps Dependencies) (Driver, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}

	switch driver {
	case DriverMemory:
		var maxBlobs int
		if cfg.Memory != nil {
			maxBlobs = cfg.Memory.MaxBlobs
		}
		return NewMemory(maxBlobs), nil
	case DriverDisk:
		if cfg.Disk == nil || cfg.Disk.Dir == "" {
			return nil, fmt.Errorf("disk driver requires a directory")
		}
		return NewDisk(cfg.Disk.Dir)
	case DriverRedis:
		return NewRedis(cfg.Redis)
	case DriverSQLite:
		if deps.SQLiteDB != nil {
			return NewSQLite(deps.SQLiteDB)
		}
		if cfg.SQLite == nil || cfg.SQLite.Path == "" {
			return nil, fmt.Errorf("sqlite driver requires a database path or handle")
		}
		return OpenSQLite(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unsupported blob store driver: %s", driver)
	}
}
