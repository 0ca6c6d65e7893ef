package core

import (
	"context"
	"fmt"

	"relicore/pkg/domain"
)

// DefaultRulesEngine returns an engine carrying the built-in validation
// rules evaluated on every transaction commit.
func DefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(LeaveEntryValidationRule())
	engine.Register(ScheduleValidationRule())
	engine.Register(ScheduleOverlapRule())
	return engine
}

// LeaveEntryValidationRule blocks commits that create or update a leave
// entry with missing or malformed required fields.
func LeaveEntryValidationRule() Rule {
	return ruleFunc{
		name: "leave-entry-valid",
		fn: func(_ context.Context, _ RuleView, changes []Change) (Result, error) {
			var result Result
			for _, change := range changes {
				if change.Action == domain.ActionDelete {
					continue
				}
				entry, ok := change.After.(domain.LeaveEntry)
				if !ok {
					continue
				}
				for _, msg := range leaveEntryProblems(entry) {
					result.Violations = append(result.Violations, Violation{
						Rule:     "leave-entry-valid",
						Severity: domain.SeverityBlock,
						Message:  msg,
						Entity:   EntityLeaveEntry,
						EntityID: entry.ID,
					})
				}
			}
			return result, nil
		},
	}
}

func leaveEntryProblems(entry domain.LeaveEntry) []string {
	var problems []string
	if entry.EmployeeName == "" {
		problems = append(problems, "leave entry requires an employee name")
	}
	if !domain.ValidISODate(entry.Date) {
		problems = append(problems, fmt.Sprintf("leave entry date %q is not a valid ISO date", entry.Date))
	}
	if entry.Type != domain.LeavePlanned && entry.Type != domain.LeaveUnplanned {
		problems = append(problems, fmt.Sprintf("leave type %q is not recognized", entry.Type))
	}
	if entry.MinutesMissed < 0 {
		problems = append(problems, "minutes missed must not be negative")
	}
	if entry.StartTime != "" && !domain.ValidClockTime(entry.StartTime) {
		problems = append(problems, fmt.Sprintf("start time %q is not a valid HH:MM clock time", entry.StartTime))
	}
	if entry.EndTime != "" && !domain.ValidClockTime(entry.EndTime) {
		problems = append(problems, fmt.Sprintf("end time %q is not a valid HH:MM clock time", entry.EndTime))
	}
	return problems
}

// ScheduleValidationRule blocks commits that save a schedule with a
// malformed effective interval or clock fields.
func ScheduleValidationRule() Rule {
	return ruleFunc{
		name: "schedule-dates-valid",
		fn: func(_ context.Context, _ RuleView, changes []Change) (Result, error) {
			var result Result
			for _, change := range changes {
				if change.Action == domain.ActionDelete {
					continue
				}
				schedule, ok := change.After.(domain.Schedule)
				if !ok {
					continue
				}
				for _, msg := range scheduleProblems(schedule) {
					result.Violations = append(result.Violations, Violation{
						Rule:     "schedule-dates-valid",
						Severity: domain.SeverityBlock,
						Message:  msg,
						Entity:   EntitySchedule,
						EntityID: schedule.ID,
					})
				}
			}
			return result, nil
		},
	}
}

func scheduleProblems(schedule domain.Schedule) []string {
	var problems []string
	if schedule.EmployeeName == "" {
		problems = append(problems, "schedule requires an employee name")
	}
	if !domain.ValidISODate(schedule.EffectiveStartDate) {
		problems = append(problems, fmt.Sprintf("effective start date %q is not a valid ISO date", schedule.EffectiveStartDate))
	}
	if schedule.EffectiveEndDate != "" {
		if !domain.ValidISODate(schedule.EffectiveEndDate) {
			problems = append(problems, fmt.Sprintf("effective end date %q is not a valid ISO date", schedule.EffectiveEndDate))
		} else if schedule.EffectiveEndDate < schedule.EffectiveStartDate {
			problems = append(problems, "effective end date precedes the effective start date")
		}
	}
	if schedule.ShiftStart != "" && !domain.ValidClockTime(schedule.ShiftStart) {
		problems = append(problems, fmt.Sprintf("shift start %q is not a valid HH:MM clock time", schedule.ShiftStart))
	}
	if schedule.ShiftEnd != "" && !domain.ValidClockTime(schedule.ShiftEnd) {
		problems = append(problems, fmt.Sprintf("shift end %q is not a valid HH:MM clock time", schedule.ShiftEnd))
	}
	if schedule.LunchStart != "" && !domain.ValidClockTime(schedule.LunchStart) {
		problems = append(problems, fmt.Sprintf("lunch start %q is not a valid HH:MM clock time", schedule.LunchStart))
	}
	if schedule.LunchMinutes < 0 {
		problems = append(problems, "lunch minutes must not be negative")
	}
	return problems
}

// ScheduleOverlapRule warns when a saved schedule's effective interval
// overlaps another version for the same employee. Overlaps are legal, the
// resolver breaks the tie, but they usually indicate a forgotten end date.
func ScheduleOverlapRule() Rule {
	return ruleFunc{
		name: "schedule-overlap",
		fn: func(_ context.Context, view RuleView, changes []Change) (Result, error) {
			var result Result
			for _, change := range changes {
				if change.Action == domain.ActionDelete {
					continue
				}
				schedule, ok := change.After.(domain.Schedule)
				if !ok {
					continue
				}
				for _, other := range view.ListSchedules(schedule.EmployeeName) {
					if other.ID == schedule.ID {
						continue
					}
					if schedulesOverlap(schedule, other) {
						result.Violations = append(result.Violations, Violation{
							Rule:     "schedule-overlap",
							Severity: domain.SeverityWarn,
							Message: fmt.Sprintf("schedule starting %s overlaps the version starting %s for %s",
								schedule.EffectiveStartDate, other.EffectiveStartDate, schedule.EmployeeName),
							Entity:   EntitySchedule,
							EntityID: schedule.ID,
						})
					}
				}
			}
			return result, nil
		},
	}
}

func schedulesOverlap(a, b domain.Schedule) bool {
	if !a.Open() && a.EffectiveEndDate < b.EffectiveStartDate {
		return false
	}
	if !b.Open() && b.EffectiveEndDate < a.EffectiveStartDate {
		return false
	}
	return true
}

type ruleFunc struct {
	name string
	fn   func(context.Context, RuleView, []Change) (Result, error)
}

func (r ruleFunc) Name() string { return r.name }

func (r ruleFunc) Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error) {
	return r.fn(ctx, view, changes)
}
