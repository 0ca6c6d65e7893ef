package core

import (
	"context"
	"fmt"

	"relicore/pkg/domain"
)

// PTOSTAnnualAllowanceMinutes is the yearly paid-time-off-short-term
// allowance per employee, 40 hours.
const PTOSTAnnualAllowanceMinutes = 2400

// PTOST usage thresholds that trigger advisory warnings.
const (
	ptostWarnRatio     = 0.75
	ptostCriticalRatio = 0.90
)

// PTOSTBalance describes an employee's allowance consumption for a year.
type PTOSTBalance struct {
	EmployeeName     string `json:"employee_name"`
	Year             int    `json:"year"`
	AllowanceMinutes int    `json:"allowance_minutes"`
	UsedMinutes      int    `json:"used_minutes"`
	RemainingMinutes int    `json:"remaining_minutes"`
	Warning          string `json:"warning,omitempty"`
}

// PTOSTBalanceFor totals the PTOST-applied minutes across the employee's
// non-deleted leave entries for the calendar year.
func (s *Service) PTOSTBalanceFor(ctx context.Context, employeeName string, year int) (PTOSTBalance, error) {
	balance := PTOSTBalance{
		EmployeeName:     employeeName,
		Year:             year,
		AllowanceMinutes: PTOSTAnnualAllowanceMinutes,
	}
	err := s.view(ctx, "ptost_balance", func(view TransactionView) error {
		entries := view.ListLeaveEntries(LeaveQuery{
			EmployeeName: employeeName,
			StartDate:    fmt.Sprintf("%04d-01-01", year),
			EndDate:      fmt.Sprintf("%04d-12-31", year),
		})
		for _, entry := range entries {
			if entry.PTOSTApplied {
				balance.UsedMinutes += entry.MinutesMissed
			}
		}
		balance.RemainingMinutes = balance.AllowanceMinutes - balance.UsedMinutes
		if balance.RemainingMinutes < 0 {
			balance.RemainingMinutes = 0
		}
		balance.Warning = ptostWarning(balance.UsedMinutes)
		return nil
	})
	return balance, err
}

func ptostWarning(used int) string {
	allowance := float64(PTOSTAnnualAllowanceMinutes)
	switch {
	case used >= PTOSTAnnualAllowanceMinutes:
		return "annual allowance exhausted"
	case float64(used) >= ptostCriticalRatio*allowance:
		return "over 90% of annual allowance used"
	case float64(used) >= ptostWarnRatio*allowance:
		return "over 75% of annual allowance used"
	default:
		return ""
	}
}

// CanApplyPTOST reports whether the employee has enough remaining
// allowance in the entry's calendar year to cover the requested minutes.
func (s *Service) CanApplyPTOST(ctx context.Context, employeeName string, year, minutes int) (bool, PTOSTBalance, error) {
	balance, err := s.PTOSTBalanceFor(ctx, employeeName, year)
	if err != nil {
		return false, PTOSTBalance{}, err
	}
	return minutes <= balance.RemainingMinutes, balance, nil
}

// PTOSTUsageByMonth buckets the employee's PTOST minutes for the year by
// month, keyed "YYYY-MM". Months with no usage are omitted.
func (s *Service) PTOSTUsageByMonth(ctx context.Context, employeeName string, year int) (map[string]int, error) {
	usage := map[string]int{}
	err := s.view(ctx, "ptost_usage_by_month", func(view TransactionView) error {
		entries := view.ListLeaveEntries(LeaveQuery{
			EmployeeName: employeeName,
			StartDate:    fmt.Sprintf("%04d-01-01", year),
			EndDate:      fmt.Sprintf("%04d-12-31", year),
		})
		for _, entry := range entries {
			if !entry.PTOSTApplied || !domain.ValidISODate(entry.Date) {
				continue
			}
			usage[entry.Date[:7]] += entry.MinutesMissed
		}
		return nil
	})
	return usage, err
}
