package core

import (
	"fmt"
	"os"
	"strings"

	"relicore/internal/infra/persistence/memory"
	"relicore/internal/infra/persistence/postgres"
	"relicore/internal/infra/persistence/sqlite"
	"relicore/pkg/domain"
)

// Environment variables controlling persistent store selection.
const (
	EnvStorageDriver = "RELICORE_STORAGE_DRIVER"
	EnvSQLitePath    = "RELICORE_SQLITE_PATH"
	EnvPostgresDSN   = "RELICORE_POSTGRES_DSN"
)

// OpenPersistentStore selects a backend from the environment. Supported
// drivers are "memory", "sqlite" (the default), and "postgres".
func OpenPersistentStore(engine *domain.RulesEngine) (PersistentStore, error) {
	driver := strings.ToLower(strings.TrimSpace(os.Getenv(EnvStorageDriver)))
	switch driver {
	case "memory":
		return memory.NewStore(engine), nil
	case "", "sqlite":
		return sqlite.NewStore(os.Getenv(EnvSQLitePath), engine)
	case "postgres":
		return postgres.NewStore(os.Getenv(EnvPostgresDSN), engine)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
