package memory

import (
	"sort"

	"relicore/pkg/domain"
)

// transactionView exposes a read-only snapshot of state to rules and
// report collaborators. All listings preserve insertion order and return
// defensive clones.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListEmployees returns every employee in insertion order.
func (v transactionView) ListEmployees() []Employee {
	out := make([]Employee, 0, len(v.state.employees))
	for _, e := range v.state.employees {
		out = append(out, cloneEmployee(e))
	}
	return out
}

// FindEmployee retrieves an employee by name.
func (v transactionView) FindEmployee(name string) (Employee, bool) {
	for _, e := range v.state.employees {
		if e.Name == name {
			return cloneEmployee(e), true
		}
	}
	return Employee{}, false
}

// ListLeaveEntries filters leave entries by employee and inclusive date
// bounds. Soft-deleted entries are excluded unless the query opts in.
func (v transactionView) ListLeaveEntries(query domain.LeaveQuery) []LeaveEntry {
	out := make([]LeaveEntry, 0, len(v.state.leave))
	for _, l := range v.state.leave {
		if l.IsDeleted && !query.IncludeDeleted {
			continue
		}
		if query.EmployeeName != "" && l.EmployeeName != query.EmployeeName {
			continue
		}
		if query.StartDate != "" && l.Date < query.StartDate {
			continue
		}
		if query.EndDate != "" && l.Date > query.EndDate {
			continue
		}
		out = append(out, cloneLeaveEntry(l))
	}
	return out
}

// FindLeaveEntry retrieves a leave entry by id, including soft-deleted ones.
func (v transactionView) FindLeaveEntry(id string) (LeaveEntry, bool) {
	for _, l := range v.state.leave {
		if l.ID == id {
			return cloneLeaveEntry(l), true
		}
	}
	return LeaveEntry{}, false
}

// ListSchedules returns schedules in insertion order, optionally narrowed
// to one employee.
func (v transactionView) ListSchedules(employeeName string) []Schedule {
	out := make([]Schedule, 0, len(v.state.schedules))
	for _, s := range v.state.schedules {
		if employeeName != "" && s.EmployeeName != employeeName {
			continue
		}
		out = append(out, cloneSchedule(s))
	}
	return out
}

// FindSchedule retrieves a schedule by id.
func (v transactionView) FindSchedule(id string) (Schedule, bool) {
	for _, s := range v.state.schedules {
		if s.ID == id {
			return cloneSchedule(s), true
		}
	}
	return Schedule{}, false
}

// ListEmails returns email records in insertion order, optionally narrowed
// to one employee.
func (v transactionView) ListEmails(employeeName string) []EmailRecord {
	out := make([]EmailRecord, 0, len(v.state.emails))
	for _, m := range v.state.emails {
		if employeeName != "" && m.EmployeeName != employeeName {
			continue
		}
		out = append(out, cloneEmail(m))
	}
	return out
}

// FindEmail retrieves an email record by id.
func (v transactionView) FindEmail(id string) (EmailRecord, bool) {
	for _, m := range v.state.emails {
		if m.ID == id {
			return cloneEmail(m), true
		}
	}
	return EmailRecord{}, false
}

// TeamMembers returns the supervisor's roster, empty when unknown.
func (v transactionView) TeamMembers(supervisor string) []string {
	return append([]string(nil), v.state.teams[supervisor]...)
}

// Supervisors lists every supervisor with a roster, sorted for stable output.
func (v transactionView) Supervisors() []string {
	out := make([]string, 0, len(v.state.teams))
	for supervisor := range v.state.teams {
		out = append(out, supervisor)
	}
	sort.Strings(out)
	return out
}

// AuditLog returns the full retained trail, oldest first.
func (v transactionView) AuditLog() []AuditLogEntry {
	out := make([]AuditLogEntry, 0, len(v.state.audit))
	for _, a := range v.state.audit {
		out = append(out, cloneAuditEntry(a))
	}
	return out
}

// AuditLogForEntity filters the trail by entity type and id.
func (v transactionView) AuditLogForEntity(entity domain.EntityType, id string) []AuditLogEntry {
	out := make([]AuditLogEntry, 0)
	for _, a := range v.state.audit {
		if a.EntityType != entity || a.EntityID != id {
			continue
		}
		out = append(out, cloneAuditEntry(a))
	}
	return out
}

// AuditLogForEmployee filters the trail by the employee name carried in
// each entry's details payload, with optional inclusive date bounds on the
// entry timestamp.
func (v transactionView) AuditLogForEmployee(employeeName, startDate, endDate string) []AuditLogEntry {
	out := make([]AuditLogEntry, 0)
	for _, a := range v.state.audit {
		name, ok := a.Details.AssociatedEmployee()
		if !ok || name != employeeName {
			continue
		}
		day := domain.FormatDate(a.Timestamp)
		if startDate != "" && day < startDate {
			continue
		}
		if endDate != "" && day > endDate {
			continue
		}
		out = append(out, cloneAuditEntry(a))
	}
	return out
}
