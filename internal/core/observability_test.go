package core

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestExpvarMetricsRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if rec.Name() == "" {
		t.Fatalf("generated name should not be empty")
	}

	ctx := context.Background()
	rec.Observe(ctx, "save_employee", true, 20*time.Millisecond)
	rec.Observe(ctx, "save_employee", true, 30*time.Millisecond)
	rec.Observe(ctx, "save_employee", false, 5*time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond) // ignored

	snap := rec.Snapshot()
	if got := snap.Results["save_employee"]["success"]; got != 2 {
		t.Fatalf("success count = %d", got)
	}
	if got := snap.Results["save_employee"]["error"]; got != 1 {
		t.Fatalf("error count = %d", got)
	}
	if got := snap.DurationsMS["save_employee"]; got != 55 {
		t.Fatalf("duration total = %v", got)
	}
}

func TestJSONTracerRecordsSpans(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)

	_, span := tracer.Start(context.Background(), "export")
	span.End(nil)
	_, span = tracer.Start(context.Background(), "import")
	span.End(fmt.Errorf("boom"))

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(entries))
	}
	if entries[0].Operation != "export" || entries[0].Status != "success" {
		t.Fatalf("entry[0] = %+v", entries[0])
	}
	if entries[1].Status != "error" || entries[1].Error != "boom" {
		t.Fatalf("entry[1] = %+v", entries[1])
	}
	if lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1; lines != 2 {
		t.Fatalf("expected 2 JSON lines, got %d", lines)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	ctx := context.Background()
	rec.Observe(ctx, "save_employee", true, 10*time.Millisecond)
	rec.Observe(ctx, "save_employee", false, 10*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	if !names["relicore_service_operations_total"] {
		t.Fatalf("operations counter missing: %v", names)
	}
	if !names["relicore_service_operation_duration_seconds"] {
		t.Fatalf("duration histogram missing: %v", names)
	}

	// Registering the same collectors twice must fail.
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("duplicate registration should error")
	}
}

func TestServiceInstrumentation(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	tracer := NewJSONTracer(nil)
	svc := newTestService(t, WithMetricsRecorder(rec), WithTracer(tracer))

	ctx := context.Background()
	if _, _, err := svc.SaveEmployee(ctx, Employee{Name: "Jane Doe", Active: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.GetEmployee(ctx, "Missing Person"); err == nil {
		t.Fatalf("expected not-found error")
	}

	snap := rec.Snapshot()
	if snap.Results["save_employee"]["success"] != 1 {
		t.Fatalf("save metric missing: %+v", snap.Results)
	}
	if snap.Results["get_employee"]["error"] != 1 {
		t.Fatalf("failed get should count as error: %+v", snap.Results)
	}

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(entries))
	}
}
