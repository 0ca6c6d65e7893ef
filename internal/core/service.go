package core

import (
	"context"
	"fmt"
	"time"
)

// ErrNotFound reports a lookup whose key has no stored record. Callers
// treat it as a benign empty result rather than a failure.
type ErrNotFound struct {
	Entity EntityType
	Key    string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// Service exposes the transactional read/write surface consumed by UI and
// report collaborators. Every operation is instrumented with the configured
// metrics recorder and tracer.
type Service struct {
	store   PersistentStore
	metrics MetricsRecorder
	tracer  Tracer
	nowFn   func() time.Time
}

// ServiceOption customizes service construction.
type ServiceOption func(*Service)

// WithMetricsRecorder installs a metrics recorder.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithNowFunc overrides the time provider used for snapshot stamps and
// seeded records, primarily for deterministic tests.
func WithNowFunc(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.nowFn = fn
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		metrics: NopMetricsRecorder(),
		tracer:  NopTracer(),
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// Close releases the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// instrument wraps an operation with a trace span and a metrics observation.
func (s *Service) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, operation)
	start := time.Now()
	err := fn(ctx)
	span.End(err)
	s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	return err
}

func (s *Service) view(ctx context.Context, operation string, fn func(TransactionView) error) error {
	return s.instrument(ctx, operation, func(ctx context.Context) error {
		return s.store.View(ctx, fn)
	})
}

func (s *Service) run(ctx context.Context, operation string, fn func(Transaction) error) (Result, error) {
	var res Result
	err := s.instrument(ctx, operation, func(ctx context.Context) error {
		var err error
		res, err = s.store.RunInTransaction(ctx, fn)
		return err
	})
	return res, err
}
