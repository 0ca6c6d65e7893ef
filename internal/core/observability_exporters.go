package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// statusLabel normalizes an operation outcome into the label both
// exporters attach to their observations.
func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// expvarSeq feeds generated publication names. expvar.Publish panics on a
// duplicate name, so anonymous recorders must not collide.
var expvarSeq atomic.Uint64

// expvarOpStats carries the running totals for a single operation.
type expvarOpStats struct {
	millis   float64
	outcomes map[string]int64
}

// ExpvarMetricsRecorder aggregates operation timings and outcomes in
// process and serves them through expvar, for deployments that scrape
// /debug/vars rather than run a metrics endpoint.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]*expvarOpStats
}

// ExpvarMetricsSnapshot is the JSON shape served under the recorder's
// expvar name. Durations are cumulative milliseconds per operation.
type ExpvarMetricsSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder publishes a recorder under the given expvar
// name, generating one when the name is empty.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("relicore_service_metrics_%d", expvarSeq.Add(1))
	}
	rec := &ExpvarMetricsRecorder{
		name: name,
		ops:  make(map[string]*expvarOpStats),
	}
	expvar.Publish(name, expvar.Func(func() any { return rec.Snapshot() }))
	return rec
}

// Name reports the expvar publication name.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := r.ops[operation]
	if stats == nil {
		stats = &expvarOpStats{outcomes: make(map[string]int64, 2)}
		r.ops[operation] = stats
	}
	stats.millis += float64(duration) / float64(time.Millisecond)
	stats.outcomes[statusLabel(success)]++
}

// Snapshot copies the totals accumulated so far.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := ExpvarMetricsSnapshot{
		DurationsMS: make(map[string]float64, len(r.ops)),
		Results:     make(map[string]map[string]int64, len(r.ops)),
		RecordedAt:  time.Now().UTC(),
	}
	for op, stats := range r.ops {
		snap.DurationsMS[op] = stats.millis
		outcomes := make(map[string]int64, len(stats.outcomes))
		for label, count := range stats.outcomes {
			outcomes[label] = count
		}
		snap.Results[op] = outcomes
	}
	return snap
}

// JSONTraceEntry is one completed span as the tracer emits it.
type JSONTraceEntry struct {
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// JSONTraceTracer writes each finished span as one JSON line and keeps
// the decoded entries around so callers can assert on them.
type JSONTraceTracer struct {
	mu      sync.Mutex
	entries []JSONTraceEntry
	enc     *json.Encoder
}

// NewJSONTracer wires a tracer to w. A nil writer keeps spans in memory
// only.
func NewJSONTracer(w io.Writer) *JSONTraceTracer {
	t := &JSONTraceTracer{}
	if w != nil {
		t.enc = json.NewEncoder(w)
	}
	return t
}

// Start implements Tracer.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonTraceSpan{tracer: t, operation: operation, started: time.Now().UTC()}
}

// Entries returns the spans recorded so far, oldest first.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]JSONTraceEntry(nil), t.entries...)
}

func (t *JSONTraceTracer) record(entry JSONTraceEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if t.enc != nil {
		_ = t.enc.Encode(entry)
	}
}

type jsonTraceSpan struct {
	tracer    *JSONTraceTracer
	operation string
	started   time.Time
}

func (s *jsonTraceSpan) End(err error) {
	ended := time.Now().UTC()
	entry := JSONTraceEntry{
		Operation:  s.operation,
		Status:     statusLabel(err == nil),
		DurationMS: float64(ended.Sub(s.started)) / float64(time.Millisecond),
		StartedAt:  s.started,
		EndedAt:    ended,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	s.tracer.record(entry)
}
