package archive

import (
	"fmt"

	"github.com/kilianp07/evoroute/config"
	corearchive "github.com/kilianp07/evoroute/core/archive"
)

// New builds the archive store selected by the storage configuration.
func New(cfg config.StorageConfig) (corearchive.Store, error) {
	switch cfg.Backend {
	case "jsonl":
		if cfg.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %s", cfg.Backend)
	}
}
