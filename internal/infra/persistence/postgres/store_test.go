package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"relicore/pkg/domain"
)

var stubSeq atomic.Int64

// stubConn emulates just enough of the wire protocol for the bucket
// schema: state upserts, the full-table select, and transaction plumbing.
type stubConn struct {
	execs      []string
	buckets    map[string][]byte
	failPing   bool
	failCommit bool
}

func newStubDB(t *testing.T) (*sql.DB, *stubConn) {
	t.Helper()
	conn := &stubConn{buckets: make(map[string][]byte)}
	name := fmt.Sprintf("stubpg%d", stubSeq.Add(1))
	sql.Register(name, stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		t.Fatalf("open stub: %v", err)
	}
	return db, conn
}

type stubDriver struct {
	conn *stubConn
}

func (d stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, fmt.Errorf("not implemented")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *stubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return stubTx{conn: c}, nil
}

func (c *stubConn) Ping(context.Context) error {
	if c.failPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.execs = append(c.execs, query)
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT INTO STATE") {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected bucket and payload args, got %d", len(args))
		}
		bucket, ok := args[0].Value.(string)
		if !ok {
			return nil, fmt.Errorf("bucket arg type %T", args[0].Value)
		}
		payload, ok := args[1].Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("payload arg type %T", args[1].Value)
		}
		c.buckets[bucket] = append([]byte(nil), payload...)
	}
	return driver.RowsAffected(1), nil
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if !strings.Contains(strings.ToUpper(query), "FROM STATE") {
		return nil, fmt.Errorf("unexpected query %q", query)
	}
	rows := make([][]driver.Value, 0, len(c.buckets))
	for bucket, payload := range c.buckets {
		rows = append(rows, []driver.Value{bucket, append([]byte(nil), payload...)})
	}
	return &stubRows{cols: []string{"bucket", "payload"}, rows: rows}, nil
}

type stubTx struct {
	conn *stubConn
}

func (t stubTx) Commit() error {
	if t.conn.failCommit {
		return fmt.Errorf("commit fail")
	}
	return nil
}

func (t stubTx) Rollback() error { return nil }

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

func TestNewStoreEnsuresStateTable(t *testing.T) {
	db, conn := newStubDB(t)
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	var sawDDL bool
	for _, stmt := range conn.execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected state table DDL, got %v", conn.execs)
	}
}

func TestRunInTransactionPersistsBuckets(t *testing.T) {
	db, conn := newStubDB(t)
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("ignored", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.SaveEmployee(domain.Employee{Name: "Jane Doe", Active: true})
		return err
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}

	for _, bucket := range postgresBuckets {
		if _, ok := conn.buckets[bucket]; !ok {
			t.Fatalf("bucket %q not persisted", bucket)
		}
	}
	if !strings.Contains(string(conn.buckets["employees"]), "Jane Doe") {
		t.Fatalf("employees payload = %s", conn.buckets["employees"])
	}
}

func TestNewStoreHydratesFromExistingBuckets(t *testing.T) {
	db, conn := newStubDB(t)
	conn.buckets["employees"] = []byte(`[{"name":"John Smith","active":true}]`)
	conn.buckets["supervisor_teams"] = []byte(`{"Sarah Wilson":["John Smith"]}`)

	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	err = store.View(context.Background(), func(view domain.TransactionView) error {
		if _, ok := view.FindEmployee("John Smith"); !ok {
			return fmt.Errorf("hydrated employee missing")
		}
		if got := view.TeamMembers("Sarah Wilson"); len(got) != 1 {
			return fmt.Errorf("hydrated roster missing, got %v", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestNewStoreFailsOnCorruptedBucket(t *testing.T) {
	db, conn := newStubDB(t)
	conn.buckets["employees"] = []byte("{not json")

	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	if _, err := NewStore("", domain.NewRulesEngine()); err == nil {
		t.Fatalf("expected open to fail on a corrupted bucket")
	}
}

func TestNewStoreFailsWhenUnreachable(t *testing.T) {
	db, conn := newStubDB(t)
	conn.failPing = true

	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	if _, err := NewStore("", domain.NewRulesEngine()); err == nil {
		t.Fatalf("expected open to fail when ping fails")
	}
}

func TestPersistErrorSurfacesFromCommit(t *testing.T) {
	db, conn := newStubDB(t)
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	conn.failCommit = true
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.SaveEmployee(domain.Employee{Name: "Jane Doe", Active: true})
		return err
	})
	if err == nil || !strings.Contains(err.Error(), "commit") {
		t.Fatalf("expected commit failure, got %v", err)
	}
}
