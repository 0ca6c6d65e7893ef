package core

import "context"

// ListEmployees returns every employee in insertion order.
func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := s.view(ctx, "list_employees", func(view TransactionView) error {
		out = view.ListEmployees()
		return nil
	})
	return out, err
}

// GetEmployee looks up an employee by full name.
func (s *Service) GetEmployee(ctx context.Context, name string) (Employee, error) {
	var out Employee
	err := s.view(ctx, "get_employee", func(view TransactionView) error {
		e, ok := view.FindEmployee(name)
		if !ok {
			return ErrNotFound{Entity: EntityEmployee, Key: name}
		}
		out = e
		return nil
	})
	return out, err
}

// SaveEmployee upserts an employee by name, merging provided fields over
// any existing record.
func (s *Service) SaveEmployee(ctx context.Context, employee Employee) (Employee, Result, error) {
	var saved Employee
	res, err := s.run(ctx, "save_employee", func(tx Transaction) error {
		var err error
		saved, err = tx.SaveEmployee(employee)
		return err
	})
	return saved, res, err
}

// DeleteEmployee removes an employee record outright.
func (s *Service) DeleteEmployee(ctx context.Context, name string) (Result, error) {
	return s.run(ctx, "delete_employee", func(tx Transaction) error {
		return tx.DeleteEmployee(name)
	})
}
