package domain

import (
	"encoding/json"
	"testing"
)

func TestChangeDetailsAssociatedEmployee(t *testing.T) {
	details, err := NewChangeDetailsFromValue(LeaveEntryDetails{
		EmployeeName:  "Jane Doe",
		Date:          "2024-03-01",
		Type:          LeaveUnplanned,
		MinutesMissed: 120,
	})
	if err != nil {
		t.Fatalf("build details: %v", err)
	}
	name, ok := details.AssociatedEmployee()
	if !ok || name != "Jane Doe" {
		t.Fatalf("AssociatedEmployee = %q, %v", name, ok)
	}
}

func TestChangeDetailsAssociatedEmployeeAbsent(t *testing.T) {
	details := NewChangeDetails(json.RawMessage(`{"subject":"check-in"}`))
	if name, ok := details.AssociatedEmployee(); ok {
		t.Fatalf("expected no associated employee, got %q", name)
	}
	if _, ok := UndefinedChangeDetails().AssociatedEmployee(); ok {
		t.Fatalf("undefined details should have no associated employee")
	}
}

func TestChangeDetailsJSONRoundTrip(t *testing.T) {
	original, err := NewChangeDetailsFromValue(EmailDetails{
		EmployeeName: "John Smith",
		EmailType:    "reliability",
		Subject:      "Attendance check-in",
	})
	if err != nil {
		t.Fatalf("build details: %v", err)
	}
	encoded, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded ChangeDetails
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	name, ok := decoded.AssociatedEmployee()
	if !ok || name != "John Smith" {
		t.Fatalf("round-tripped AssociatedEmployee = %q, %v", name, ok)
	}
}

func TestChangeDetailsNullEncoding(t *testing.T) {
	encoded, err := json.Marshal(UndefinedChangeDetails())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != "null" {
		t.Fatalf("undefined details encoded as %s", encoded)
	}
	var decoded ChangeDetails
	if err := json.Unmarshal([]byte("null"), &decoded); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if decoded.Defined() {
		t.Fatalf("null should decode to undefined details")
	}
}
