package core

import "context"

// ListEmails returns sent-email records, optionally narrowed to one employee.
func (s *Service) ListEmails(ctx context.Context, employeeName string) ([]EmailRecord, error) {
	var out []EmailRecord
	err := s.view(ctx, "list_emails", func(view TransactionView) error {
		out = view.ListEmails(employeeName)
		return nil
	})
	return out, err
}

// GetEmail looks up an email record by id.
func (s *Service) GetEmail(ctx context.Context, id string) (EmailRecord, error) {
	var out EmailRecord
	err := s.view(ctx, "get_email", func(view TransactionView) error {
		m, ok := view.FindEmail(id)
		if !ok {
			return ErrNotFound{Entity: EntityEmail, Key: id}
		}
		out = m
		return nil
	})
	return out, err
}

// LogEmail appends a sent-email record; the store appends an EMAIL_SENT
// audit entry as a side effect.
func (s *Service) LogEmail(ctx context.Context, email EmailRecord) (EmailRecord, Result, error) {
	var logged EmailRecord
	res, err := s.run(ctx, "log_email", func(tx Transaction) error {
		var err error
		logged, err = tx.LogEmail(email)
		return err
	})
	return logged, res, err
}

// UpdateEmailResponse records the employee's reply on a logged email.
func (s *Service) UpdateEmailResponse(ctx context.Context, id, response string) (EmailRecord, Result, error) {
	var updated EmailRecord
	res, err := s.run(ctx, "update_email_response", func(tx Transaction) error {
		var err error
		updated, err = tx.SetEmailResponse(id, response)
		return err
	})
	return updated, res, err
}
