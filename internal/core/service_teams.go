package core

import "context"

// TeamMembers returns the supervisor's roster, empty when the supervisor
// is unknown.
func (s *Service) TeamMembers(ctx context.Context, supervisor string) ([]string, error) {
	var out []string
	err := s.view(ctx, "team_members", func(view TransactionView) error {
		out = view.TeamMembers(supervisor)
		return nil
	})
	return out, err
}

// Supervisors lists every supervisor with a stored roster.
func (s *Service) Supervisors(ctx context.Context) ([]string, error) {
	var out []string
	err := s.view(ctx, "supervisors", func(view TransactionView) error {
		out = view.Supervisors()
		return nil
	})
	return out, err
}

// SetTeamMembers replaces the supervisor's roster unconditionally.
func (s *Service) SetTeamMembers(ctx context.Context, supervisor string, members []string) (Result, error) {
	return s.run(ctx, "set_team_members", func(tx Transaction) error {
		return tx.SetTeamMembers(supervisor, members)
	})
}

// AddTeamMember appends an employee to the roster. Idempotent.
func (s *Service) AddTeamMember(ctx context.Context, supervisor, employeeName string) (Result, error) {
	return s.run(ctx, "add_team_member", func(tx Transaction) error {
		return tx.AddTeamMember(supervisor, employeeName)
	})
}

// RemoveTeamMember drops an employee from the roster. No-op when absent.
func (s *Service) RemoveTeamMember(ctx context.Context, supervisor, employeeName string) (Result, error) {
	return s.run(ctx, "remove_team_member", func(tx Transaction) error {
		return tx.RemoveTeamMember(supervisor, employeeName)
	})
}
