// Package domain defines the persistent entities, value types, and rule
// evaluation primitives used by relicore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records, audit entries,
// and persistence buckets.
const (
	// EntityEmployee identifies an employee record keyed by full name.
	EntityEmployee EntityType = "Employee"
	// EntityLeaveEntry identifies a leave entry record.
	EntityLeaveEntry EntityType = "LeaveEntry"
	// EntitySchedule identifies an effective-dated work schedule record.
	EntitySchedule EntityType = "Schedule"
	// EntityEmail identifies a sent-email log record.
	EntityEmail EntityType = "Email"
)

// Action indicates the type of modification performed.
type Action string

// Audit actions enumerate the mutations captured in the audit trail.
const (
	// ActionCreate indicates a record was created.
	ActionCreate Action = "CREATE"
	// ActionUpdate indicates a record was updated.
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	// ActionEmailSent indicates an email was logged for an employee.
	ActionEmailSent Action = "EMAIL_SENT"
)

// LeaveType distinguishes planned from unplanned absence.
type LeaveType string

// Canonical leave types accepted at the store boundary.
const (
	LeavePlanned   LeaveType = "Planned"
	LeaveUnplanned LeaveType = "Unplanned"
)

// AuditLogCap bounds the audit trail to the most recent entries; older
// entries are evicted oldest-first whenever an append would exceed it.
const AuditLogCap = 1000

// SnapshotVersion tags exported snapshots so future readers can detect
// incompatible layouts.
const SnapshotVersion = "1.0"

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for generated-id records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Employee is keyed by full name (natural key, unique within the store).
// Cross-entity references to an employee are by name and may dangle; no
// cascading delete of dependent schedules or leave entries is performed.
type Employee struct {
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Supervisor string    `json:"supervisor,omitempty"`
	HireDate   string    `json:"hire_date,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LeaveEntry records a single absence window for an employee. Entries are
// soft-deleted only: a deleted entry stays in the collection, flagged, and
// is excluded from default queries.
type LeaveEntry struct {
	Base
	EmployeeName   string     `json:"employee_name"`
	Date           string     `json:"date"`
	Type           LeaveType  `json:"type"`
	StartTime      string     `json:"start_time,omitempty"`
	EndTime        string     `json:"end_time,omitempty"`
	MinutesMissed  int        `json:"minutes_missed"`
	Reason         string     `json:"reason,omitempty"`
	PTOSTApplied   bool       `json:"ptost_applied"`
	EnteredBy      string     `json:"entered_by,omitempty"`
	LastModifiedBy string     `json:"last_modified_by,omitempty"`
	IsDeleted      bool       `json:"is_deleted"`
	DeletedBy      string     `json:"deleted_by,omitempty"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	DeletionReason string     `json:"deletion_reason,omitempty"`
}

// Schedule is an effective-dated work schedule for one employee. The
// interval is inclusive on both ends; an empty EffectiveEndDate means
// open-ended (current).
type Schedule struct {
	Base
	EmployeeName         string   `json:"employee_name"`
	EffectiveStartDate   string   `json:"effective_start_date"`
	EffectiveEndDate     string   `json:"effective_end_date,omitempty"`
	ShiftStart           string   `json:"shift_start"`
	ShiftEnd             string   `json:"shift_end"`
	ScheduledHoursPerDay float64  `json:"scheduled_hours_per_day"`
	LunchStart           string   `json:"lunch_start,omitempty"`
	LunchMinutes         int      `json:"lunch_minutes"`
	WorkDays             []string `json:"work_days"`
	Notes                string   `json:"notes,omitempty"`
}

// Open reports whether the schedule has no end date.
func (s Schedule) Open() bool { return s.EffectiveEndDate == "" }

// Contains reports whether date falls inside the schedule's inclusive
// effective interval. ISO-8601 date strings compare lexicographically in
// chronological order.
func (s Schedule) Contains(date string) bool {
	if s.EffectiveStartDate > date {
		return false
	}
	return s.Open() || s.EffectiveEndDate >= date
}

// Default schedule values synthesized when an employee has no stored
// schedule covering the reference date. Never persisted.
const (
	DefaultShiftStart   = "08:00"
	DefaultShiftEnd     = "17:00"
	DefaultHoursPerDay  = 8
	DefaultLunchStart   = "12:00"
	DefaultLunchMinutes = 30
)

// DefaultWorkDays returns the default Monday through Friday working set.
func DefaultWorkDays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
}

// DefaultSchedule synthesizes the fallback schedule for an employee.
func DefaultSchedule(employeeName string) Schedule {
	return Schedule{
		EmployeeName:         employeeName,
		ShiftStart:           DefaultShiftStart,
		ShiftEnd:             DefaultShiftEnd,
		ScheduledHoursPerDay: DefaultHoursPerDay,
		LunchStart:           DefaultLunchStart,
		LunchMinutes:         DefaultLunchMinutes,
		WorkDays:             DefaultWorkDays(),
	}
}

// EmailRecord logs an email sent to an employee. Append-mostly: only the
// response fields are mutated after creation.
type EmailRecord struct {
	Base
	EmployeeName    string     `json:"employee_name"`
	SentBy          string     `json:"sent_by,omitempty"`
	EmailType       string     `json:"email_type,omitempty"`
	Subject         string     `json:"subject"`
	Body            string     `json:"body,omitempty"`
	RelatedEntryIDs []string   `json:"related_entry_ids,omitempty"`
	SentAt          time.Time  `json:"sent_at"`
	Response        string     `json:"response,omitempty"`
	ResponseAt      *time.Time `json:"response_at,omitempty"`
}

// AuditLogEntry is an immutable record of one mutation. The collection is
// capped at AuditLogCap entries with oldest-first eviction.
type AuditLogEntry struct {
	ID          string        `json:"id"`
	EntityType  EntityType    `json:"entity_type"`
	EntityID    string        `json:"entity_id"`
	Action      Action        `json:"action"`
	PerformedBy string        `json:"performed_by,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Details     ChangeDetails `json:"details,omitempty"`
	Reason      string        `json:"reason,omitempty"`
}

// Snapshot aggregates every collection for bulk export and import. A nil
// collection in an imported snapshot leaves the corresponding stored
// collection untouched; exports always populate every collection.
type Snapshot struct {
	Employees       []Employee          `json:"employees"`
	LeaveEntries    []LeaveEntry        `json:"leave_entries"`
	Schedules       []Schedule          `json:"schedules"`
	EmailLog        []EmailRecord       `json:"email_log"`
	AuditLog        []AuditLogEntry     `json:"audit_log"`
	SupervisorTeams map[string][]string `json:"supervisor_teams"`
	ExportedAt      time.Time           `json:"exported_at"`
	Version         string              `json:"version"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
