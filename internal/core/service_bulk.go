package core

import (
	"context"

	"relicore/pkg/domain"
)

// Export returns a snapshot of every collection, stamped with the export
// time and schema version.
func (s *Service) Export(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot
	err := s.instrument(ctx, "export", func(context.Context) error {
		snapshot = s.store.ExportState()
		return nil
	})
	return snapshot, err
}

// Import restores the collections present in the snapshot. A collection
// absent from the snapshot is left untouched.
func (s *Service) Import(ctx context.Context, snapshot Snapshot) error {
	return s.instrument(ctx, "import", func(context.Context) error {
		return s.store.ImportState(snapshot)
	})
}

// Clear removes every collection unconditionally. Irreversible.
func (s *Service) Clear(ctx context.Context) error {
	return s.instrument(ctx, "clear", func(context.Context) error {
		return s.store.Clear()
	})
}

// SeedSampleData loads a small demonstration data set. Idempotent: it
// no-ops and reports false when any employee already exists.
func (s *Service) SeedSampleData(ctx context.Context) (bool, error) {
	seeded := false
	err := s.instrument(ctx, "seed_sample_data", func(ctx context.Context) error {
		existing := 0
		if err := s.store.View(ctx, func(view TransactionView) error {
			existing = len(view.ListEmployees())
			return nil
		}); err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}
		_, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
			if err := seedEmployees(tx); err != nil {
				return err
			}
			if err := seedSchedules(tx); err != nil {
				return err
			}
			if err := seedLeaveEntries(tx); err != nil {
				return err
			}
			return tx.SetTeamMembers("Sarah Wilson", []string{"John Smith", "Jane Doe", "Robert Martinez"})
		})
		if err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func seedEmployees(tx Transaction) error {
	employees := []Employee{
		{Name: "John Smith", Email: "john.smith@example.com", Supervisor: "Sarah Wilson", HireDate: "2021-03-15", Active: true},
		{Name: "Jane Doe", Email: "jane.doe@example.com", Supervisor: "Sarah Wilson", HireDate: "2019-08-01", Active: true},
		{Name: "Robert Martinez", Email: "robert.martinez@example.com", Supervisor: "Sarah Wilson", HireDate: "2023-01-09", Active: true},
	}
	for _, e := range employees {
		if _, err := tx.SaveEmployee(e); err != nil {
			return err
		}
	}
	return nil
}

func seedSchedules(tx Transaction) error {
	schedules := []Schedule{
		{
			EmployeeName:         "John Smith",
			EffectiveStartDate:   "2024-01-01",
			ShiftStart:           "08:00",
			ShiftEnd:             "17:00",
			ScheduledHoursPerDay: 8,
			LunchStart:           "12:00",
			LunchMinutes:         30,
			WorkDays:             domain.DefaultWorkDays(),
		},
		{
			EmployeeName:         "Jane Doe",
			EffectiveStartDate:   "2024-01-01",
			ShiftStart:           "07:00",
			ShiftEnd:             "15:30",
			ScheduledHoursPerDay: 8,
			LunchStart:           "11:30",
			LunchMinutes:         30,
			WorkDays:             domain.DefaultWorkDays(),
			Notes:                "Early shift",
		},
	}
	for _, sc := range schedules {
		if _, err := tx.SaveSchedule(sc); err != nil {
			return err
		}
	}
	return nil
}

func seedLeaveEntries(tx Transaction) error {
	entries := []LeaveEntry{
		{
			EmployeeName:  "John Smith",
			Date:          "2024-02-05",
			Type:          domain.LeaveUnplanned,
			StartTime:     "08:00",
			EndTime:       "12:00",
			MinutesMissed: 240,
			Reason:        "Car trouble",
			EnteredBy:     "Sarah Wilson",
		},
		{
			EmployeeName:  "Jane Doe",
			Date:          "2024-02-12",
			Type:          domain.LeavePlanned,
			StartTime:     "07:00",
			EndTime:       "15:30",
			MinutesMissed: 480,
			Reason:        "Vacation day",
			EnteredBy:     "Sarah Wilson",
		},
	}
	for _, entry := range entries {
		if _, err := tx.SaveLeaveEntry(entry); err != nil {
			return err
		}
	}
	return nil
}
