// Package memory provides the in-memory implementation of the core
// persistence store. It is the authoritative implementation of the store
// semantics; the durable backends wrap it and snapshot its state.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"relicore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Employee aliases domain.Employee for in-memory persistence operations.
	Employee = domain.Employee
	// LeaveEntry aliases domain.LeaveEntry.
	LeaveEntry = domain.LeaveEntry
	// Schedule aliases domain.Schedule.
	Schedule = domain.Schedule
	// EmailRecord aliases domain.EmailRecord.
	EmailRecord = domain.EmailRecord
	// AuditLogEntry aliases domain.AuditLogEntry.
	AuditLogEntry = domain.AuditLogEntry
	// Snapshot aliases domain.Snapshot used for export and import.
	Snapshot = domain.Snapshot
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

// memoryState holds every collection in insertion order. Teams map
// supervisors to ordered member name slices.
type memoryState struct {
	employees []Employee
	leave     []LeaveEntry
	schedules []Schedule
	emails    []EmailRecord
	audit     []AuditLogEntry
	teams     map[string][]string
}

func newMemoryState() memoryState {
	return memoryState{teams: make(map[string][]string)}
}

func (s memoryState) clone() memoryState {
	cloned := memoryState{
		employees: make([]Employee, 0, len(s.employees)),
		leave:     make([]LeaveEntry, 0, len(s.leave)),
		schedules: make([]Schedule, 0, len(s.schedules)),
		emails:    make([]EmailRecord, 0, len(s.emails)),
		audit:     make([]AuditLogEntry, 0, len(s.audit)),
		teams:     make(map[string][]string, len(s.teams)),
	}
	for _, e := range s.employees {
		cloned.employees = append(cloned.employees, cloneEmployee(e))
	}
	for _, l := range s.leave {
		cloned.leave = append(cloned.leave, cloneLeaveEntry(l))
	}
	for _, sc := range s.schedules {
		cloned.schedules = append(cloned.schedules, cloneSchedule(sc))
	}
	for _, m := range s.emails {
		cloned.emails = append(cloned.emails, cloneEmail(m))
	}
	for _, a := range s.audit {
		cloned.audit = append(cloned.audit, cloneAuditEntry(a))
	}
	for supervisor, members := range s.teams {
		cloned.teams[supervisor] = append([]string(nil), members...)
	}
	return cloned
}

func cloneEmployee(e Employee) Employee { return e }

func cloneLeaveEntry(l LeaveEntry) LeaveEntry {
	cp := l
	if l.DeletedAt != nil {
		t := *l.DeletedAt
		cp.DeletedAt = &t
	}
	return cp
}

func cloneSchedule(s Schedule) Schedule {
	cp := s
	cp.WorkDays = append([]string(nil), s.WorkDays...)
	return cp
}

func cloneEmail(m EmailRecord) EmailRecord {
	cp := m
	cp.RelatedEntryIDs = append([]string(nil), m.RelatedEntryIDs...)
	if m.ResponseAt != nil {
		t := *m.ResponseAt
		cp.ResponseAt = &t
	}
	return cp
}

func cloneAuditEntry(a AuditLogEntry) AuditLogEntry {
	cp := a
	cp.Details = cloneDetails(a.Details)
	return cp
}

func cloneDetails(d domain.ChangeDetails) domain.ChangeDetails {
	if !d.Defined() {
		return domain.UndefinedChangeDetails()
	}
	return domain.NewChangeDetails(d.Raw())
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	snapshot := Snapshot{
		Employees:       make([]Employee, 0, len(state.employees)),
		LeaveEntries:    make([]LeaveEntry, 0, len(state.leave)),
		Schedules:       make([]Schedule, 0, len(state.schedules)),
		EmailLog:        make([]EmailRecord, 0, len(state.emails)),
		AuditLog:        make([]AuditLogEntry, 0, len(state.audit)),
		SupervisorTeams: make(map[string][]string, len(state.teams)),
	}
	for _, e := range state.employees {
		snapshot.Employees = append(snapshot.Employees, cloneEmployee(e))
	}
	for _, l := range state.leave {
		snapshot.LeaveEntries = append(snapshot.LeaveEntries, cloneLeaveEntry(l))
	}
	for _, s := range state.schedules {
		snapshot.Schedules = append(snapshot.Schedules, cloneSchedule(s))
	}
	for _, m := range state.emails {
		snapshot.EmailLog = append(snapshot.EmailLog, cloneEmail(m))
	}
	for _, a := range state.audit {
		snapshot.AuditLog = append(snapshot.AuditLog, cloneAuditEntry(a))
	}
	for supervisor, members := range state.teams {
		snapshot.SupervisorTeams[supervisor] = append([]string(nil), members...)
	}
	return snapshot
}

// Store provides the in-memory transactional store for the core domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
	idFn   func() string
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
		idFn:   uuid.NewString,
	}
}

// SetNowFunc overrides the time provider, primarily for deterministic tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// ExportState clones the current store state for external persistence and
// stamps the snapshot with the export time and schema version.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := snapshotFromMemoryState(s.state)
	snapshot.ExportedAt = s.nowFn()
	snapshot.Version = domain.SnapshotVersion
	return snapshot
}

// ImportState replaces each collection present in the snapshot. A nil
// collection leaves the corresponding stored collection untouched, so
// partial snapshots restore independently at collection granularity.
func (s *Store) ImportState(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot.Employees != nil {
		s.state.employees = make([]Employee, 0, len(snapshot.Employees))
		for _, e := range snapshot.Employees {
			s.state.employees = append(s.state.employees, cloneEmployee(e))
		}
	}
	if snapshot.LeaveEntries != nil {
		s.state.leave = make([]LeaveEntry, 0, len(snapshot.LeaveEntries))
		for _, l := range snapshot.LeaveEntries {
			s.state.leave = append(s.state.leave, cloneLeaveEntry(l))
		}
	}
	if snapshot.Schedules != nil {
		s.state.schedules = make([]Schedule, 0, len(snapshot.Schedules))
		for _, sc := range snapshot.Schedules {
			s.state.schedules = append(s.state.schedules, cloneSchedule(sc))
		}
	}
	if snapshot.EmailLog != nil {
		s.state.emails = make([]EmailRecord, 0, len(snapshot.EmailLog))
		for _, m := range snapshot.EmailLog {
			s.state.emails = append(s.state.emails, cloneEmail(m))
		}
	}
	if snapshot.AuditLog != nil {
		s.state.audit = make([]AuditLogEntry, 0, len(snapshot.AuditLog))
		for _, a := range snapshot.AuditLog {
			s.state.audit = append(s.state.audit, cloneAuditEntry(a))
		}
		s.state.audit = trimAuditLog(s.state.audit)
	}
	if snapshot.SupervisorTeams != nil {
		s.state.teams = make(map[string][]string, len(snapshot.SupervisorTeams))
		for supervisor, members := range snapshot.SupervisorTeams {
			s.state.teams[supervisor] = dedupeStrings(members)
		}
	}
	return nil
}

// Clear removes every collection unconditionally. Irreversible.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newMemoryState()
	return nil
}

// Close releases resources; the in-memory store holds none.
func (s *Store) Close() error { return nil }

func trimAuditLog(entries []AuditLogEntry) []AuditLogEntry {
	if len(entries) <= domain.AuditLogCap {
		return entries
	}
	trimmed := entries[len(entries)-domain.AuditLogCap:]
	return append([]AuditLogEntry(nil), trimmed...)
}

func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// RunInTransaction executes fn within a transactional copy of the store
// state, evaluates registered rules over the recorded changes, and commits
// only when no blocking violation is present.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// appendAudit assigns an id and timestamp, appends to the tail, and trims
// the log so it never exceeds the cap after a write.
func (tx *transaction) appendAudit(entry AuditLogEntry) {
	entry.ID = tx.store.idFn()
	entry.Timestamp = tx.now
	tx.state.audit = append(tx.state.audit, entry)
	tx.state.audit = trimAuditLog(tx.state.audit)
}

func (tx *transaction) findEmployeeIndex(name string) int {
	for i, e := range tx.state.employees {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// SaveEmployee upserts an employee by name. Existing records are merged:
// non-empty incoming fields win, the Active flag is always taken from the
// incoming record, and the original creation timestamp is preserved.
func (tx *transaction) SaveEmployee(e Employee) (Employee, error) {
	if e.Name == "" {
		return Employee{}, fmt.Errorf("employee name required")
	}
	idx := tx.findEmployeeIndex(e.Name)
	if idx < 0 {
		e.CreatedAt = tx.now
		e.UpdatedAt = tx.now
		tx.state.employees = append(tx.state.employees, cloneEmployee(e))
		tx.recordChange(Change{Entity: domain.EntityEmployee, Action: domain.ActionCreate, After: cloneEmployee(e)})
		return cloneEmployee(e), nil
	}
	existing := tx.state.employees[idx]
	before := cloneEmployee(existing)
	merged := existing
	if e.Email != "" {
		merged.Email = e.Email
	}
	if e.Supervisor != "" {
		merged.Supervisor = e.Supervisor
	}
	if e.HireDate != "" {
		merged.HireDate = e.HireDate
	}
	merged.Active = e.Active
	merged.UpdatedAt = tx.now
	tx.state.employees[idx] = cloneEmployee(merged)
	tx.recordChange(Change{Entity: domain.EntityEmployee, Action: domain.ActionUpdate, Before: before, After: cloneEmployee(merged)})
	return cloneEmployee(merged), nil
}

// DeleteEmployee removes an employee record outright. No audit entry is
// written: employee deletion is an administrative action, unlike the
// soft-delete path for leave entries. Dependent schedules and leave
// entries are left in place and may dangle.
func (tx *transaction) DeleteEmployee(name string) error {
	idx := tx.findEmployeeIndex(name)
	if idx < 0 {
		return fmt.Errorf("employee %q not found", name)
	}
	removed := cloneEmployee(tx.state.employees[idx])
	tx.state.employees = append(tx.state.employees[:idx], tx.state.employees[idx+1:]...)
	tx.recordChange(Change{Entity: domain.EntityEmployee, Action: domain.ActionDelete, Before: removed})
	return nil
}

func (tx *transaction) findLeaveIndex(id string) int {
	for i, l := range tx.state.leave {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func leaveDetails(l LeaveEntry) domain.ChangeDetails {
	details, err := domain.NewChangeDetailsFromValue(domain.LeaveEntryDetails{
		EmployeeName:   l.EmployeeName,
		Date:           l.Date,
		Type:           l.Type,
		MinutesMissed:  l.MinutesMissed,
		Reason:         l.Reason,
		DeletionReason: l.DeletionReason,
	})
	if err != nil {
		return domain.UndefinedChangeDetails()
	}
	return details
}

// SaveLeaveEntry upserts a leave entry by generated id and appends an audit
// entry tagged CREATE or UPDATE depending on whether the id pre-existed.
func (tx *transaction) SaveLeaveEntry(l LeaveEntry) (LeaveEntry, error) {
	idx := -1
	if l.ID != "" {
		idx = tx.findLeaveIndex(l.ID)
	}
	if idx < 0 {
		if l.ID == "" {
			l.ID = tx.store.idFn()
		}
		l.CreatedAt = tx.now
		l.UpdatedAt = tx.now
		tx.state.leave = append(tx.state.leave, cloneLeaveEntry(l))
		tx.recordChange(Change{Entity: domain.EntityLeaveEntry, Action: domain.ActionCreate, After: cloneLeaveEntry(l)})
		tx.appendAudit(AuditLogEntry{
			EntityType:  domain.EntityLeaveEntry,
			EntityID:    l.ID,
			Action:      domain.ActionCreate,
			PerformedBy: l.EnteredBy,
			Details:     leaveDetails(l),
		})
		return cloneLeaveEntry(l), nil
	}
	existing := tx.state.leave[idx]
	before := cloneLeaveEntry(existing)
	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = tx.now
	tx.state.leave[idx] = cloneLeaveEntry(l)
	tx.recordChange(Change{Entity: domain.EntityLeaveEntry, Action: domain.ActionUpdate, Before: before, After: cloneLeaveEntry(l)})
	tx.appendAudit(AuditLogEntry{
		EntityType:  domain.EntityLeaveEntry,
		EntityID:    l.ID,
		Action:      domain.ActionUpdate,
		PerformedBy: l.LastModifiedBy,
		Details:     leaveDetails(l),
	})
	return cloneLeaveEntry(l), nil
}

// DeleteLeaveEntry soft-deletes an entry: the record is retained and
// flagged, and an audit entry tagged DELETE carries the deletion reason.
func (tx *transaction) DeleteLeaveEntry(id, deletedBy, reason string) error {
	idx := tx.findLeaveIndex(id)
	if idx < 0 {
		return fmt.Errorf("leave entry %q not found", id)
	}
	entry := tx.state.leave[idx]
	before := cloneLeaveEntry(entry)
	deletedAt := tx.now
	entry.IsDeleted = true
	entry.DeletedBy = deletedBy
	entry.DeletedAt = &deletedAt
	entry.DeletionReason = reason
	entry.UpdatedAt = tx.now
	tx.state.leave[idx] = cloneLeaveEntry(entry)
	tx.recordChange(Change{Entity: domain.EntityLeaveEntry, Action: domain.ActionDelete, Before: before, After: cloneLeaveEntry(entry)})
	tx.appendAudit(AuditLogEntry{
		EntityType:  domain.EntityLeaveEntry,
		EntityID:    id,
		Action:      domain.ActionDelete,
		PerformedBy: deletedBy,
		Details:     leaveDetails(entry),
		Reason:      reason,
	})
	return nil
}

func (tx *transaction) findScheduleIndex(id string) int {
	for i, s := range tx.state.schedules {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SaveSchedule upserts a schedule. A non-empty incoming ID targets that
// stored record, so a caller can correct its effective start date without
// spawning a duplicate; otherwise the upsert matches on employee name plus
// effective start date, so re-saving the same effective version replaces
// it in place.
func (tx *transaction) SaveSchedule(sc Schedule) (Schedule, error) {
	if sc.EmployeeName == "" {
		return Schedule{}, fmt.Errorf("schedule employee name required")
	}
	idx := -1
	if sc.ID != "" {
		idx = tx.findScheduleIndex(sc.ID)
	}
	if idx >= 0 {
		for i, existing := range tx.state.schedules {
			if i != idx && existing.EmployeeName == sc.EmployeeName && existing.EffectiveStartDate == sc.EffectiveStartDate {
				return Schedule{}, fmt.Errorf("schedule for %q effective %s already exists", sc.EmployeeName, sc.EffectiveStartDate)
			}
		}
	} else {
		for i, existing := range tx.state.schedules {
			if existing.EmployeeName == sc.EmployeeName && existing.EffectiveStartDate == sc.EffectiveStartDate {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		if sc.ID == "" {
			sc.ID = tx.store.idFn()
		}
		sc.CreatedAt = tx.now
		sc.UpdatedAt = tx.now
		tx.state.schedules = append(tx.state.schedules, cloneSchedule(sc))
		tx.recordChange(Change{Entity: domain.EntitySchedule, Action: domain.ActionCreate, After: cloneSchedule(sc)})
		return cloneSchedule(sc), nil
	}
	existing := tx.state.schedules[idx]
	before := cloneSchedule(existing)
	sc.ID = existing.ID
	sc.CreatedAt = existing.CreatedAt
	sc.UpdatedAt = tx.now
	tx.state.schedules[idx] = cloneSchedule(sc)
	tx.recordChange(Change{Entity: domain.EntitySchedule, Action: domain.ActionUpdate, Before: before, After: cloneSchedule(sc)})
	return cloneSchedule(sc), nil
}

// DeleteSchedule removes a schedule version outright.
func (tx *transaction) DeleteSchedule(id string) error {
	idx := tx.findScheduleIndex(id)
	if idx < 0 {
		return fmt.Errorf("schedule %q not found", id)
	}
	removed := cloneSchedule(tx.state.schedules[idx])
	tx.state.schedules = append(tx.state.schedules[:idx], tx.state.schedules[idx+1:]...)
	tx.recordChange(Change{Entity: domain.EntitySchedule, Action: domain.ActionDelete, Before: removed})
	return nil
}

func (tx *transaction) findEmailIndex(id string) int {
	for i, m := range tx.state.emails {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// LogEmail appends a sent-email record and an EMAIL_SENT audit entry.
func (tx *transaction) LogEmail(m EmailRecord) (EmailRecord, error) {
	if m.EmployeeName == "" {
		return EmailRecord{}, fmt.Errorf("email employee name required")
	}
	if m.ID == "" {
		m.ID = tx.store.idFn()
	} else if tx.findEmailIndex(m.ID) >= 0 {
		return EmailRecord{}, fmt.Errorf("email %q already exists", m.ID)
	}
	m.CreatedAt = tx.now
	m.UpdatedAt = tx.now
	if m.SentAt.IsZero() {
		m.SentAt = tx.now
	}
	tx.state.emails = append(tx.state.emails, cloneEmail(m))
	tx.recordChange(Change{Entity: domain.EntityEmail, Action: domain.ActionCreate, After: cloneEmail(m)})
	details, err := domain.NewChangeDetailsFromValue(domain.EmailDetails{
		EmployeeName:    m.EmployeeName,
		EmailType:       m.EmailType,
		Subject:         m.Subject,
		RelatedEntryIDs: m.RelatedEntryIDs,
	})
	if err != nil {
		details = domain.UndefinedChangeDetails()
	}
	tx.appendAudit(AuditLogEntry{
		EntityType:  domain.EntityEmail,
		EntityID:    m.ID,
		Action:      domain.ActionEmailSent,
		PerformedBy: m.SentBy,
		Details:     details,
	})
	return cloneEmail(m), nil
}

// SetEmailResponse records the employee's reply on an existing email.
func (tx *transaction) SetEmailResponse(id, response string) (EmailRecord, error) {
	idx := tx.findEmailIndex(id)
	if idx < 0 {
		return EmailRecord{}, fmt.Errorf("email %q not found", id)
	}
	existing := tx.state.emails[idx]
	before := cloneEmail(existing)
	responseAt := tx.now
	existing.Response = response
	existing.ResponseAt = &responseAt
	existing.UpdatedAt = tx.now
	tx.state.emails[idx] = cloneEmail(existing)
	tx.recordChange(Change{Entity: domain.EntityEmail, Action: domain.ActionUpdate, Before: before, After: cloneEmail(existing)})
	return cloneEmail(existing), nil
}

// SetTeamMembers replaces the supervisor's roster unconditionally.
func (tx *transaction) SetTeamMembers(supervisor string, members []string) error {
	if supervisor == "" {
		return fmt.Errorf("supervisor name required")
	}
	tx.state.teams[supervisor] = dedupeStrings(members)
	return nil
}

// AddTeamMember appends the employee to the supervisor's roster. Idempotent.
func (tx *transaction) AddTeamMember(supervisor, employeeName string) error {
	if supervisor == "" || employeeName == "" {
		return fmt.Errorf("supervisor and employee names required")
	}
	for _, existing := range tx.state.teams[supervisor] {
		if existing == employeeName {
			return nil
		}
	}
	tx.state.teams[supervisor] = append(tx.state.teams[supervisor], employeeName)
	return nil
}

// RemoveTeamMember drops the employee from the roster. No-op when absent.
func (tx *transaction) RemoveTeamMember(supervisor, employeeName string) error {
	members := tx.state.teams[supervisor]
	for i, existing := range members {
		if existing == employeeName {
			tx.state.teams[supervisor] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return nil
}

// FindEmployee exposes employee lookup within the transaction scope.
func (tx *transaction) FindEmployee(name string) (Employee, bool) {
	idx := tx.findEmployeeIndex(name)
	if idx < 0 {
		return Employee{}, false
	}
	return cloneEmployee(tx.state.employees[idx]), true
}

// FindLeaveEntry exposes leave entry lookup within the transaction scope.
func (tx *transaction) FindLeaveEntry(id string) (LeaveEntry, bool) {
	idx := tx.findLeaveIndex(id)
	if idx < 0 {
		return LeaveEntry{}, false
	}
	return cloneLeaveEntry(tx.state.leave[idx]), true
}

// FindSchedule exposes schedule lookup within the transaction scope.
func (tx *transaction) FindSchedule(id string) (Schedule, bool) {
	idx := tx.findScheduleIndex(id)
	if idx < 0 {
		return Schedule{}, false
	}
	return cloneSchedule(tx.state.schedules[idx]), true
}

// FindEmail exposes email lookup within the transaction scope.
func (tx *transaction) FindEmail(id string) (EmailRecord, bool) {
	idx := tx.findEmailIndex(id)
	if idx < 0 {
		return EmailRecord{}, false
	}
	return cloneEmail(tx.state.emails[idx]), true
}
