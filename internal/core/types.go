// Package core exposes the service facade over the persistence layer:
// validated CRUD, the temporal schedule resolver, supervisor rosters,
// audit queries, bulk export/import, and the leave analysis helpers.
package core

import "relicore/pkg/domain"

type (
	// Employee aliases domain.Employee.
	Employee = domain.Employee
	// LeaveEntry aliases domain.LeaveEntry.
	LeaveEntry = domain.LeaveEntry
	// Schedule aliases domain.Schedule.
	Schedule = domain.Schedule
	// EmailRecord aliases domain.EmailRecord.
	EmailRecord = domain.EmailRecord
	// AuditLogEntry aliases domain.AuditLogEntry.
	AuditLogEntry = domain.AuditLogEntry
	// Snapshot aliases domain.Snapshot.
	Snapshot = domain.Snapshot
	// LeaveQuery aliases domain.LeaveQuery.
	LeaveQuery = domain.LeaveQuery
	// EntityType aliases domain.EntityType.
	EntityType = domain.EntityType
	// Action aliases domain.Action.
	Action = domain.Action
	// Change aliases domain.Change.
	Change = domain.Change
	// Result aliases domain.Result.
	Result = domain.Result
	// Violation aliases domain.Violation.
	Violation = domain.Violation
	// Rule aliases domain.Rule.
	Rule = domain.Rule
	// RuleView aliases domain.RuleView.
	RuleView = domain.RuleView
	// RulesEngine aliases domain.RulesEngine.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView.
	TransactionView = domain.TransactionView
	// PersistentStore aliases domain.PersistentStore.
	PersistentStore = domain.PersistentStore
)

// Entity type constants re-exported for callers of the core package.
const (
	EntityEmployee   = domain.EntityEmployee
	EntityLeaveEntry = domain.EntityLeaveEntry
	EntitySchedule   = domain.EntitySchedule
	EntityEmail      = domain.EntityEmail
)

// Audit action constants re-exported for callers of the core package.
const (
	ActionCreate    = domain.ActionCreate
	ActionUpdate    = domain.ActionUpdate
	ActionDelete    = domain.ActionDelete
	ActionEmailSent = domain.ActionEmailSent
)
