// Command relicore administers the coaching data store: seeding sample
// data, exporting and importing snapshots, archiving to blob storage, and
// printing collection statistics.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"relicore/internal/backup"
	"relicore/internal/blob"
	"relicore/internal/core"
	"relicore/pkg/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	command, rest := args[0], args[1:]

	store, err := core.OpenPersistentStore(core.DefaultRulesEngine())
	if err != nil {
		logger.Error("open store", slog.Any("error", err))
		return 1
	}
	service := core.NewService(store)
	defer func() {
		if err := service.Close(); err != nil {
			logger.Error("close store", slog.Any("error", err))
		}
	}()

	ctx := context.Background()
	switch command {
	case "seed":
		return runSeed(ctx, service, logger)
	case "export":
		return runExport(ctx, service, logger, stdout, rest)
	case "import":
		return runImport(ctx, service, logger, rest)
	case "clear":
		return runClear(ctx, service, logger, rest)
	case "backup":
		return runBackup(ctx, service, logger)
	case "restore":
		return runRestore(ctx, service, logger, rest)
	case "stats":
		return runStats(ctx, service, logger, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: relicore <command> [flags]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  seed               load sample data into an empty store")
	fmt.Fprintln(w, "  export [-o file]   write a snapshot as JSON (stdout by default)")
	fmt.Fprintln(w, "  import -i file     import a snapshot file")
	fmt.Fprintln(w, "  clear -force       delete all stored data")
	fmt.Fprintln(w, "  backup             archive a snapshot to the configured blob store")
	fmt.Fprintln(w, "  restore -key key   restore an archived snapshot")
	fmt.Fprintln(w, "  stats              print collection counts")
}

func runSeed(ctx context.Context, service *core.Service, logger *slog.Logger) int {
	seeded, err := service.SeedSampleData(ctx)
	if err != nil {
		logger.Error("seed", slog.Any("error", err))
		return 1
	}
	if !seeded {
		logger.Info("store already has employees, nothing seeded")
		return 0
	}
	logger.Info("sample data seeded")
	return 0
}

func runExport(ctx context.Context, service *core.Service, logger *slog.Logger, stdout io.Writer, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "", "output file (stdout when empty)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	snapshot, err := service.Export(ctx)
	if err != nil {
		logger.Error("export", slog.Any("error", err))
		return 1
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		logger.Error("encode snapshot", slog.Any("error", err))
		return 1
	}
	if *out == "" {
		fmt.Fprintln(stdout, string(payload))
		return 0
	}
	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		logger.Error("write snapshot", slog.Any("error", err))
		return 1
	}
	logger.Info("snapshot written", slog.String("path", *out))
	return 0
}

func runImport(ctx context.Context, service *core.Service, logger *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	in := fs.String("i", "", "snapshot file to import")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *in == "" {
		logger.Error("import requires -i <file>")
		return 2
	}
	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("read snapshot", slog.Any("error", err))
		return 1
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Error("decode snapshot", slog.Any("error", err))
		return 1
	}
	if err := service.Import(ctx, snapshot); err != nil {
		logger.Error("import", slog.Any("error", err))
		return 1
	}
	logger.Info("snapshot imported", slog.String("path", *in))
	return 0
}

func runClear(ctx context.Context, service *core.Service, logger *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	force := fs.Bool("force", false, "confirm deleting all stored data")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !*force {
		logger.Error("refusing to clear without -force")
		return 2
	}
	if err := service.Clear(ctx); err != nil {
		logger.Error("clear", slog.Any("error", err))
		return 1
	}
	logger.Info("all data cleared")
	return 0
}

func runBackup(ctx context.Context, service *core.Service, logger *slog.Logger) int {
	blobs, err := blob.Open(ctx)
	if err != nil {
		logger.Error("open blob store", slog.Any("error", err))
		return 1
	}
	exporter := backup.NewExporter(service, blobs, logger)
	info, err := exporter.Export(ctx)
	if err != nil {
		logger.Error("backup", slog.Any("error", err))
		return 1
	}
	logger.Info("backup complete", slog.String("key", info.Key))
	return 0
}

func runRestore(ctx context.Context, service *core.Service, logger *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	key := fs.String("key", "", "archive key to restore")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *key == "" {
		logger.Error("restore requires -key <archive key>")
		return 2
	}
	blobs, err := blob.Open(ctx)
	if err != nil {
		logger.Error("open blob store", slog.Any("error", err))
		return 1
	}
	exporter := backup.NewExporter(service, blobs, logger)
	if err := exporter.Restore(ctx, *key); err != nil {
		logger.Error("restore", slog.Any("error", err))
		return 1
	}
	return 0
}

func runStats(ctx context.Context, service *core.Service, logger *slog.Logger, stdout io.Writer) int {
	snapshot, err := service.Export(ctx)
	if err != nil {
		logger.Error("stats", slog.Any("error", err))
		return 1
	}
	fmt.Fprintf(stdout, "employees:        %d\n", len(snapshot.Employees))
	fmt.Fprintf(stdout, "leave entries:    %d\n", len(snapshot.LeaveEntries))
	fmt.Fprintf(stdout, "schedules:        %d\n", len(snapshot.Schedules))
	fmt.Fprintf(stdout, "emails logged:    %d\n", len(snapshot.EmailLog))
	fmt.Fprintf(stdout, "audit entries:    %d\n", len(snapshot.AuditLog))
	fmt.Fprintf(stdout, "supervisor teams: %d\n", len(snapshot.SupervisorTeams))
	return 0
}
