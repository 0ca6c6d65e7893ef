package domain

import "context"

// LeaveQuery narrows leave entry listings. Zero values mean "no filter";
// date bounds are inclusive ISO date strings compared lexicographically.
// Soft-deleted entries are excluded unless IncludeDeleted is set.
type LeaveQuery struct {
	EmployeeName   string
	StartDate      string
	EndDate        string
	IncludeDeleted bool
}

// Transaction exposes the domain mutations that a persistence implementation
// must support within an atomic scope. Every mutator records Change entries
// evaluated by the rules engine at commit; leave entry and email mutators
// additionally append audit trail entries as a write side effect.
type Transaction interface {
	Snapshot() TransactionView
	SaveEmployee(Employee) (Employee, error)
	DeleteEmployee(name string) error
	SaveLeaveEntry(LeaveEntry) (LeaveEntry, error)
	DeleteLeaveEntry(id, deletedBy, reason string) error
	SaveSchedule(Schedule) (Schedule, error)
	DeleteSchedule(id string) error
	LogEmail(EmailRecord) (EmailRecord, error)
	SetEmailResponse(id, response string) (EmailRecord, error)
	SetTeamMembers(supervisor string, members []string) error
	AddTeamMember(supervisor, employeeName string) error
	RemoveTeamMember(supervisor, employeeName string) error
	FindEmployee(name string) (Employee, bool)
	FindLeaveEntry(id string) (LeaveEntry, bool)
	FindSchedule(id string) (Schedule, bool)
	FindEmail(id string) (EmailRecord, bool)
}

// TransactionView provides read-only access to snapshot data for rules and
// report collaborators. Listings preserve insertion order.
type TransactionView interface {
	ListEmployees() []Employee
	FindEmployee(name string) (Employee, bool)
	ListLeaveEntries(query LeaveQuery) []LeaveEntry
	FindLeaveEntry(id string) (LeaveEntry, bool)
	ListSchedules(employeeName string) []Schedule
	FindSchedule(id string) (Schedule, bool)
	ListEmails(employeeName string) []EmailRecord
	FindEmail(id string) (EmailRecord, bool)
	TeamMembers(supervisor string) []string
	Supervisors() []string
	AuditLog() []AuditLogEntry
	AuditLogForEntity(entity EntityType, id string) []AuditLogEntry
	AuditLogForEmployee(employeeName, startDate, endDate string) []AuditLogEntry
}

// PersistentStore is the abstraction over durable backends. Implementations
// own their state exclusively and guard it with a single writer lock;
// last-write-wins at collection granularity.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ExportState() Snapshot
	ImportState(Snapshot) error
	Clear() error
	Close() error
}
