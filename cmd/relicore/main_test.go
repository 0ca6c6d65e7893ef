package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relicore/internal/core"
	"relicore/pkg/domain"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv(core.EnvStorageDriver, "sqlite")
	t.Setenv(core.EnvSQLitePath, filepath.Join(t.TempDir(), "relicore.db"))
}

func TestUsageWithoutCommand(t *testing.T) {
	useSQLite(t)
	code, _, stderr := runCLI(t)
	if code != 2 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "usage: relicore") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestUnknownCommand(t *testing.T) {
	useSQLite(t)
	code, _, stderr := runCLI(t, "frobnicate")
	if code != 2 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestSeedExportAndStatsFlow(t *testing.T) {
	useSQLite(t)

	if code, _, stderr := runCLI(t, "seed"); code != 0 {
		t.Fatalf("seed failed (%d): %s", code, stderr)
	}
	// Second seed is a no-op against the same database.
	if code, _, stderr := runCLI(t, "seed"); code != 0 {
		t.Fatalf("repeat seed failed (%d): %s", code, stderr)
	}

	code, stdout, stderr := runCLI(t, "export")
	if code != 0 {
		t.Fatalf("export failed (%d): %s", code, stderr)
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(stdout), &snapshot); err != nil {
		t.Fatalf("export output not JSON: %v", err)
	}
	if len(snapshot.Employees) == 0 {
		t.Fatalf("export should carry seeded employees")
	}

	code, stdout, stderr = runCLI(t, "stats")
	if code != 0 {
		t.Fatalf("stats failed (%d): %s", code, stderr)
	}
	if !strings.Contains(stdout, "employees:") {
		t.Fatalf("stats output = %q", stdout)
	}
}

func TestImportAndClear(t *testing.T) {
	useSQLite(t)

	snapshot := domain.Snapshot{Employees: []domain.Employee{{Name: "Imported Person", Active: true}}}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	if code, _, stderr := runCLI(t, "import", "-i", path); code != 0 {
		t.Fatalf("import failed (%d): %s", code, stderr)
	}
	code, stdout, _ := runCLI(t, "export")
	if code != 0 {
		t.Fatalf("export failed")
	}
	if !strings.Contains(stdout, "Imported Person") {
		t.Fatalf("imported employee missing from export")
	}

	// Clear refuses without the confirmation flag.
	if code, _, _ := runCLI(t, "clear"); code != 2 {
		t.Fatalf("unconfirmed clear should exit 2, got %d", code)
	}
	if code, _, stderr := runCLI(t, "clear", "-force"); code != 0 {
		t.Fatalf("clear failed (%d): %s", code, stderr)
	}
	code, stdout, _ = runCLI(t, "export")
	if code != 0 {
		t.Fatalf("export failed")
	}
	if strings.Contains(stdout, "Imported Person") {
		t.Fatalf("clear should remove imported data")
	}
}

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	useSQLite(t)
	t.Setenv("RELICORE_BLOB_DRIVER", "fs")
	t.Setenv("RELICORE_BLOB_FS_ROOT", t.TempDir())

	if code, _, stderr := runCLI(t, "seed"); code != 0 {
		t.Fatalf("seed failed: %s", stderr)
	}
	code, _, stderr := runCLI(t, "backup")
	if code != 0 {
		t.Fatalf("backup failed (%d): %s", code, stderr)
	}

	// The archive key is logged; pull it out of the structured output.
	idx := strings.Index(stderr, "snapshots/")
	if idx < 0 {
		t.Fatalf("backup log missing archive key: %s", stderr)
	}
	key := stderr[idx:]
	if end := strings.IndexAny(key, " \n\""); end > 0 {
		key = key[:end]
	}

	if code, _, stderr := runCLI(t, "clear", "-force"); code != 0 {
		t.Fatalf("clear failed: %s", stderr)
	}
	if code, _, stderr := runCLI(t, "restore", "-key", key); code != 0 {
		t.Fatalf("restore failed (%d): %s", code, stderr)
	}
	code, stdout, _ := runCLI(t, "export")
	if code != 0 {
		t.Fatalf("export failed")
	}
	if !strings.Contains(stdout, "John Smith") {
		t.Fatalf("restore should bring the seeded employees back")
	}
}
