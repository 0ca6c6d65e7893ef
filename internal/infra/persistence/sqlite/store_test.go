package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"relicore/pkg/domain"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relicore.db")

	store := openTestStore(t, path)
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.SaveEmployee(domain.Employee{Name: "Jane Doe", Active: true}); err != nil {
			return err
		}
		if _, err := tx.SaveLeaveEntry(domain.LeaveEntry{
			EmployeeName: "Jane Doe",
			Date:         "2024-03-04",
			Type:         domain.LeaveUnplanned,
			EnteredBy:    "Sarah Wilson",
		}); err != nil {
			return err
		}
		return tx.SetTeamMembers("Sarah Wilson", []string{"Jane Doe"})
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	defer func() { _ = reopened.Close() }()

	err = reopened.View(context.Background(), func(view domain.TransactionView) error {
		if _, ok := view.FindEmployee("Jane Doe"); !ok {
			return fmt.Errorf("employee lost across reopen")
		}
		if got := len(view.ListLeaveEntries(domain.LeaveQuery{EmployeeName: "Jane Doe"})); got != 1 {
			return fmt.Errorf("leave entries lost across reopen, got %d", got)
		}
		if got := len(view.AuditLog()); got != 1 {
			return fmt.Errorf("audit log lost across reopen, got %d", got)
		}
		if got := len(view.TeamMembers("Sarah Wilson")); got != 1 {
			return fmt.Errorf("roster lost across reopen, got %d", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestClearPersistsEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relicore.db")

	store := openTestStore(t, path)
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.SaveEmployee(domain.Employee{Name: "Jane Doe", Active: true})
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	defer func() { _ = reopened.Close() }()
	err = reopened.View(context.Background(), func(view domain.TransactionView) error {
		if got := len(view.ListEmployees()); got != 0 {
			return fmt.Errorf("cleared state should stay empty, got %d employees", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestImportStatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relicore.db")

	store := openTestStore(t, path)
	snapshot := domain.Snapshot{
		Employees:       []domain.Employee{{Name: "John Smith", Active: true}},
		SupervisorTeams: map[string][]string{"Sarah Wilson": {"John Smith"}},
	}
	if err := store.ImportState(snapshot); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	defer func() { _ = reopened.Close() }()
	err := reopened.View(context.Background(), func(view domain.TransactionView) error {
		if _, ok := view.FindEmployee("John Smith"); !ok {
			return fmt.Errorf("imported employee lost across reopen")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCorruptedBucketFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relicore.db")

	store := openTestStore(t, path)
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.SaveEmployee(domain.Employee{Name: "Jane Doe", Active: true})
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if _, err := store.DB().Exec(`UPDATE state SET payload = ? WHERE bucket = ?`, []byte("{not json"), "employees"); err != nil {
		t.Fatalf("corrupt bucket: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := NewStore(path, nil); err == nil {
		t.Fatalf("expected open to fail on a corrupted bucket")
	}
}

func TestDefaultPathApplied(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data", "relicore.db")
	store := openTestStore(t, path)
	defer func() { _ = store.Close() }()
	if store.Path() != path {
		t.Fatalf("path = %q, want %q", store.Path(), path)
	}
}
