package core

import (
	"context"
	"fmt"

	"relicore/pkg/domain"
)

// ListSchedules returns schedules in insertion order, optionally narrowed
// to one employee.
func (s *Service) ListSchedules(ctx context.Context, employeeName string) ([]Schedule, error) {
	var out []Schedule
	err := s.view(ctx, "list_schedules", func(view TransactionView) error {
		out = view.ListSchedules(employeeName)
		return nil
	})
	return out, err
}

// SaveSchedule upserts a schedule version. A populated ID targets that
// stored record; otherwise the version is keyed by employee name plus
// effective start date.
func (s *Service) SaveSchedule(ctx context.Context, schedule Schedule) (Schedule, Result, error) {
	var saved Schedule
	res, err := s.run(ctx, "save_schedule", func(tx Transaction) error {
		var err error
		saved, err = tx.SaveSchedule(schedule)
		return err
	})
	return saved, res, err
}

// DeleteSchedule removes a schedule version.
func (s *Service) DeleteSchedule(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_schedule", func(tx Transaction) error {
		return tx.DeleteSchedule(id)
	})
}

// ResolveActiveSchedule picks the schedule version whose effective interval
// contains the reference date. When several versions overlap the date, the
// one with the most recent effective start date wins. When none match, a
// default schedule is synthesized for the employee; it is never persisted.
func (s *Service) ResolveActiveSchedule(ctx context.Context, employeeName, date string) (Schedule, error) {
	if !domain.ValidISODate(date) {
		return Schedule{}, fmt.Errorf("invalid reference date %q", date)
	}
	var out Schedule
	err := s.view(ctx, "resolve_active_schedule", func(view TransactionView) error {
		matched := false
		for _, candidate := range view.ListSchedules(employeeName) {
			if !candidate.Contains(date) {
				continue
			}
			if !matched || candidate.EffectiveStartDate > out.EffectiveStartDate {
				out = candidate
				matched = true
			}
		}
		if !matched {
			out = domain.DefaultSchedule(employeeName)
		}
		return nil
	})
	return out, err
}
