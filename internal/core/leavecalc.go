package core

import (
	"context"
	"fmt"

	"relicore/pkg/domain"
)

// MissedMinutes computes the working minutes missed between two clock
// times under a schedule, subtracting any overlap with the scheduled
// lunch break. The result is never negative.
func MissedMinutes(startTime, endTime string, schedule Schedule) (int, error) {
	start, err := domain.ClockMinutes(startTime)
	if err != nil {
		return 0, fmt.Errorf("parse start time: %w", err)
	}
	end, err := domain.ClockMinutes(endTime)
	if err != nil {
		return 0, fmt.Errorf("parse end time: %w", err)
	}
	if end < start {
		return 0, fmt.Errorf("end time %s precedes start time %s", endTime, startTime)
	}
	missed := end - start
	if schedule.LunchStart != "" && schedule.LunchMinutes > 0 {
		lunchStart, err := domain.ClockMinutes(schedule.LunchStart)
		if err == nil {
			lunchEnd := lunchStart + schedule.LunchMinutes
			missed -= overlapMinutes(start, end, lunchStart, lunchEnd)
		}
	}
	if missed < 0 {
		missed = 0
	}
	return missed, nil
}

func overlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// LeaveBreakdown aggregates an employee's missed minutes over a date range.
type LeaveBreakdown struct {
	EmployeeName       string `json:"employee_name"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	TotalMissed        int    `json:"total_missed"`
	Planned            int    `json:"planned"`
	Unplanned          int    `json:"unplanned"`
	PTOSTUsed          int    `json:"ptost_used"`
	ReliabilityMinutes int    `json:"reliability_minutes"`
	EntryCount         int    `json:"entry_count"`
}

// LeaveBreakdownFor totals the employee's non-deleted leave entries in the
// inclusive date range. Reliability minutes count unplanned leave not
// covered by PTOST.
func (s *Service) LeaveBreakdownFor(ctx context.Context, employeeName, startDate, endDate string) (LeaveBreakdown, error) {
	breakdown := LeaveBreakdown{EmployeeName: employeeName, StartDate: startDate, EndDate: endDate}
	err := s.view(ctx, "leave_breakdown", func(view TransactionView) error {
		entries := view.ListLeaveEntries(LeaveQuery{
			EmployeeName: employeeName,
			StartDate:    startDate,
			EndDate:      endDate,
		})
		for _, entry := range entries {
			breakdown.EntryCount++
			breakdown.TotalMissed += entry.MinutesMissed
			switch entry.Type {
			case domain.LeavePlanned:
				breakdown.Planned += entry.MinutesMissed
			case domain.LeaveUnplanned:
				breakdown.Unplanned += entry.MinutesMissed
				if !entry.PTOSTApplied {
					breakdown.ReliabilityMinutes += entry.MinutesMissed
				}
			}
			if entry.PTOSTApplied {
				breakdown.PTOSTUsed += entry.MinutesMissed
			}
		}
		return nil
	})
	return breakdown, err
}

// LeaveBreakdownForPeriod resolves a named period relative to the
// reference time before computing the breakdown.
func (s *Service) LeaveBreakdownForPeriod(ctx context.Context, employeeName string, period domain.Period) (LeaveBreakdown, error) {
	start, end, err := domain.PeriodRange(period, s.nowFn())
	if err != nil {
		return LeaveBreakdown{}, err
	}
	return s.LeaveBreakdownFor(ctx, employeeName, start, end)
}
