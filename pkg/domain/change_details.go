package domain

import "encoding/json"

// ChangeDetails wraps the JSON payload attached to an audit entry. Callers
// should unmarshal the raw bytes into typed structures as needed; entries
// that relate to an employee expose the name through AssociatedEmployee.
type ChangeDetails struct {
	defined bool
	raw     json.RawMessage
}

// NewChangeDetails builds a details wrapper from raw JSON. The bytes are
// cloned to prevent callers from mutating shared state. Passing a nil slice
// yields a defined but empty payload; use UndefinedChangeDetails for "not set".
func NewChangeDetails(raw json.RawMessage) ChangeDetails {
	details := ChangeDetails{defined: true}
	if raw != nil {
		details.raw = cloneRawMessage(raw)
	}
	return details
}

// NewChangeDetailsFromValue marshals a typed value into a ChangeDetails.
func NewChangeDetailsFromValue[T any](value T) (ChangeDetails, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return ChangeDetails{}, err
	}
	return NewChangeDetails(raw), nil
}

// UndefinedChangeDetails returns an uninitialized details wrapper.
func UndefinedChangeDetails() ChangeDetails {
	return ChangeDetails{}
}

// Defined reports whether the details have been initialized.
func (d ChangeDetails) Defined() bool {
	return d.defined
}

// IsEmpty reports whether the details contain no bytes.
func (d ChangeDetails) IsEmpty() bool {
	if !d.defined {
		return true
	}
	return len(d.raw) == 0
}

// Raw returns a cloned copy of the underlying JSON bytes. Nil is returned
// when the details are undefined or empty.
func (d ChangeDetails) Raw() json.RawMessage {
	if !d.defined || len(d.raw) == 0 {
		return nil
	}
	return cloneRawMessage(d.raw)
}

// AssociatedEmployee decodes the employee name carried by the payload. Every
// detail payload written for an employee-scoped entity must populate the
// employee_name field so per-employee audit queries can locate it.
func (d ChangeDetails) AssociatedEmployee() (string, bool) {
	if d.IsEmpty() {
		return "", false
	}
	var probe struct {
		EmployeeName string `json:"employee_name"`
	}
	if err := json.Unmarshal(d.raw, &probe); err != nil {
		return "", false
	}
	if probe.EmployeeName == "" {
		return "", false
	}
	return probe.EmployeeName, true
}

// MarshalJSON serializes the wrapped payload, emitting null when undefined.
func (d ChangeDetails) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("null"), nil
	}
	return cloneRawMessage(d.raw), nil
}

// UnmarshalJSON hydrates the wrapper from stored JSON.
func (d *ChangeDetails) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ChangeDetails{}
		return nil
	}
	*d = NewChangeDetails(data)
	return nil
}

// LeaveEntryDetails is the typed audit payload for leave entry mutations.
type LeaveEntryDetails struct {
	EmployeeName   string    `json:"employee_name"`
	Date           string    `json:"date,omitempty"`
	Type           LeaveType `json:"type,omitempty"`
	MinutesMissed  int       `json:"minutes_missed,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	DeletionReason string    `json:"deletion_reason,omitempty"`
}

// EmailDetails is the typed audit payload for sent-email log entries.
type EmailDetails struct {
	EmployeeName    string   `json:"employee_name"`
	EmailType       string   `json:"email_type,omitempty"`
	Subject         string   `json:"subject,omitempty"`
	RelatedEntryIDs []string `json:"related_entry_ids,omitempty"`
}

func cloneRawMessage(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	cloned := make(json.RawMessage, len(raw))
	copy(cloned, raw)
	return cloned
}
