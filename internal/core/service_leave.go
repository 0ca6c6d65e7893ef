package core

import "context"

// ListLeaveEntries filters leave entries by employee and inclusive date
// bounds. Soft-deleted entries are excluded unless the query opts in.
func (s *Service) ListLeaveEntries(ctx context.Context, query LeaveQuery) ([]LeaveEntry, error) {
	var out []LeaveEntry
	err := s.view(ctx, "list_leave_entries", func(view TransactionView) error {
		out = view.ListLeaveEntries(query)
		return nil
	})
	return out, err
}

// GetLeaveEntry looks up a leave entry by id, including soft-deleted ones.
func (s *Service) GetLeaveEntry(ctx context.Context, id string) (LeaveEntry, error) {
	var out LeaveEntry
	err := s.view(ctx, "get_leave_entry", func(view TransactionView) error {
		entry, ok := view.FindLeaveEntry(id)
		if !ok {
			return ErrNotFound{Entity: EntityLeaveEntry, Key: id}
		}
		out = entry
		return nil
	})
	return out, err
}

// SaveLeaveEntry upserts a leave entry by id; the store appends the
// matching CREATE or UPDATE audit entry as a side effect.
func (s *Service) SaveLeaveEntry(ctx context.Context, entry LeaveEntry) (LeaveEntry, Result, error) {
	var saved LeaveEntry
	res, err := s.run(ctx, "save_leave_entry", func(tx Transaction) error {
		var err error
		saved, err = tx.SaveLeaveEntry(entry)
		return err
	})
	return saved, res, err
}

// DeleteLeaveEntry soft-deletes an entry, recording who deleted it and why.
func (s *Service) DeleteLeaveEntry(ctx context.Context, id, deletedBy, reason string) (Result, error) {
	return s.run(ctx, "delete_leave_entry", func(tx Transaction) error {
		return tx.DeleteLeaveEntry(id, deletedBy, reason)
	})
}
