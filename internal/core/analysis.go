package core

import (
	"context"

	"relicore/pkg/domain"
)

// Reliability thresholds in unplanned, non-PTOST minutes per year.
const (
	ReliabilityWarningMinutes  = 480
	ReliabilityCriticalMinutes = 960
)

// ReliabilityLevel classifies an employee's unplanned-absence exposure.
type ReliabilityLevel string

const (
	ReliabilityOK       ReliabilityLevel = "ok"
	ReliabilityWarning  ReliabilityLevel = "warning"
	ReliabilityCritical ReliabilityLevel = "critical"
)

// ReliabilitySummary reports one employee's standing for a date range.
type ReliabilitySummary struct {
	EmployeeName       string           `json:"employee_name"`
	StartDate          string           `json:"start_date"`
	EndDate            string           `json:"end_date"`
	ReliabilityMinutes int              `json:"reliability_minutes"`
	Level              ReliabilityLevel `json:"level"`
}

// ReliabilitySummaryFor classifies the employee's unplanned minutes not
// covered by PTOST over the inclusive date range.
func (s *Service) ReliabilitySummaryFor(ctx context.Context, employeeName, startDate, endDate string) (ReliabilitySummary, error) {
	breakdown, err := s.LeaveBreakdownFor(ctx, employeeName, startDate, endDate)
	if err != nil {
		return ReliabilitySummary{}, err
	}
	return ReliabilitySummary{
		EmployeeName:       employeeName,
		StartDate:          startDate,
		EndDate:            endDate,
		ReliabilityMinutes: breakdown.ReliabilityMinutes,
		Level:              classifyReliability(breakdown.ReliabilityMinutes),
	}, nil
}

// TeamReliability computes summaries for every member of the supervisor's
// roster, in roster order.
func (s *Service) TeamReliability(ctx context.Context, supervisor string, period domain.Period) ([]ReliabilitySummary, error) {
	start, end, err := domain.PeriodRange(period, s.nowFn())
	if err != nil {
		return nil, err
	}
	members, err := s.TeamMembers(ctx, supervisor)
	if err != nil {
		return nil, err
	}
	summaries := make([]ReliabilitySummary, 0, len(members))
	for _, member := range members {
		summary, err := s.ReliabilitySummaryFor(ctx, member, start, end)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func classifyReliability(minutes int) ReliabilityLevel {
	switch {
	case minutes >= ReliabilityCriticalMinutes:
		return ReliabilityCritical
	case minutes >= ReliabilityWarningMinutes:
		return ReliabilityWarning
	default:
		return ReliabilityOK
	}
}
