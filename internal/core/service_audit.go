package core

import "context"

// AuditLog returns the full retained audit trail, oldest first.
func (s *Service) AuditLog(ctx context.Context) ([]AuditLogEntry, error) {
	var out []AuditLogEntry
	err := s.view(ctx, "audit_log", func(view TransactionView) error {
		out = view.AuditLog()
		return nil
	})
	return out, err
}

// AuditLogForEntity returns the trail entries recorded for one entity.
func (s *Service) AuditLogForEntity(ctx context.Context, entity EntityType, id string) ([]AuditLogEntry, error) {
	var out []AuditLogEntry
	err := s.view(ctx, "audit_log_for_entity", func(view TransactionView) error {
		out = view.AuditLogForEntity(entity, id)
		return nil
	})
	return out, err
}

// AuditLogForEmployee returns the trail entries whose details payload names
// the employee, with optional inclusive ISO date bounds.
func (s *Service) AuditLogForEmployee(ctx context.Context, employeeName, startDate, endDate string) ([]AuditLogEntry, error) {
	var out []AuditLogEntry
	err := s.view(ctx, "audit_log_for_employee", func(view TransactionView) error {
		out = view.AuditLogForEmployee(employeeName, startDate, endDate)
		return nil
	})
	return out, err
}
