// Package sqlite provides a SQLite-backed persistent store. Each collection
// is serialized whole as a JSON blob under a fixed bucket key; the full
// state is rewritten after every successful mutation. O(n) per write, which
// is acceptable at the record volumes this tool targets.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"relicore/internal/infra/persistence/memory"
	"relicore/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

const defaultPath = "relicore.db"

// Store persists the in-memory state to a single SQLite table as JSON blobs.
// It snapshots the full state after every successful transaction.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the database at path, ensures the state
// table exists, and hydrates the in-memory store from any stored buckets.
// A corrupted bucket payload fails the open: there is no migration path
// for malformed stored data.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

var sqliteBuckets = []string{"employees", "leave_entries", "schedules", "email_log", "audit_log", "supervisor_teams"}

func snapshotBucketTargets(snapshot *domain.Snapshot) map[string]any {
	return map[string]any{
		"employees":        &snapshot.Employees,
		"leave_entries":    &snapshot.LeaveEntries,
		"schedules":        &snapshot.Schedules,
		"email_log":        &snapshot.EmailLog,
		"audit_log":        &snapshot.AuditLog,
		"supervisor_teams": &snapshot.SupervisorTeams,
	}
}

func snapshotBucketPayload(snapshot domain.Snapshot, bucket string) ([]byte, error) {
	switch bucket {
	case "employees":
		return json.Marshal(snapshot.Employees)
	case "leave_entries":
		return json.Marshal(snapshot.LeaveEntries)
	case "schedules":
		return json.Marshal(snapshot.Schedules)
	case "email_log":
		return json.Marshal(snapshot.EmailLog)
	case "audit_log":
		return json.Marshal(snapshot.AuditLog)
	case "supervisor_teams":
		return json.Marshal(snapshot.SupervisorTeams)
	default:
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshot domain.Snapshot
	targets := snapshotBucketTargets(&snapshot)
	loaded := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}
		target, ok := targets[bucket]
		if !ok || len(payload) == 0 {
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return fmt.Errorf("decode %s: %w", bucket, err)
		}
		loaded = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if !loaded {
		return nil
	}
	return s.Store.ImportState(snapshot)
}

func (s *Store) persist() (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range sqliteBuckets {
		data, err := snapshotBucketPayload(snapshot, bucket)
		if err != nil {
			retErr = err
			return retErr
		}
		if _, err := tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	return tx.Commit()
}

// RunInTransaction applies fn within a transaction, then snapshots state to
// SQLite if successful.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// ImportState replaces the collections present in the snapshot and persists.
func (s *Store) ImportState(snapshot domain.Snapshot) error {
	if err := s.Store.ImportState(snapshot); err != nil {
		return err
	}
	return s.persist()
}

// Clear wipes every collection and persists the empty state.
func (s *Store) Clear() error {
	if err := s.Store.Clear(); err != nil {
		return err
	}
	return s.persist()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
