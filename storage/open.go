package storage

import (
	"fmt"
	"log/slog"
	"time"
)

// Backend names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open builds the Store selected by driver. A positive cacheTTL puts a read
// cache in front of it.
func Open(logger *slog.Logger, driver, path string, cacheTTL time.Duration) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case DriverFile, "":
		s, err = NewFileStore(logger, path)
	case DriverSQLite:
		s, err = NewSQLiteStore(logger, path)
	case DriverMemory:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("storage opened", "driver", driver, "path", path, "cache_ttl", cacheTTL.String())
	if cacheTTL > 0 {
		return NewCached(s, cacheTTL), nil
	}
	return s, nil
}
