package core

import (
	"context"
	"time"
)

// MetricsRecorder aggregates service operation outcomes and timings.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer opens spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan terminates a span opened by a Tracer.
type TraceSpan interface {
	End(err error)
}

type nopMetricsRecorder struct{}

func (nopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// NopMetricsRecorder returns a recorder that discards all observations.
func NopMetricsRecorder() MetricsRecorder { return nopMetricsRecorder{} }

type nopTracer struct{}

type nopSpan struct{}

func (nopSpan) End(error) {}

func (nopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, nopSpan{}
}

// NopTracer returns a tracer that produces inert spans.
func NopTracer() Tracer { return nopTracer{} }
