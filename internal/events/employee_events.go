package events

import "time"

const EmployeeLifecycleTopic = "leave.employee.lifecycle.v1"

const (
	EmployeeCreated  = "employee_created"
	EmployeeUpdated  = "employee_updated"
	EmployeeDeleted  = "employee_deleted"
	EmployeeImported = "employees_imported"
)

type EmployeeEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	EmployeeID      uint      `json:"employee_id"`
	Name            string    `json:"name"`
	Department      string    `json:"department"`
	TotalLeaves     int       `json:"total_leaves"`
	AvailableLeaves int       `json:"available_leaves"`
	LeavesRemoved   int       `json:"leaves_removed,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// EmployeesImportedEvent summarises one accepted import batch.
type EmployeesImportedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	EmployeeIDs []uint    `json:"employee_ids"`
	OccurredAt  time.Time `json:"occurred_at"`
}
