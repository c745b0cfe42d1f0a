package events

import "time"

const LeaveLedgerTopic = "leave.ledger.v1"

const (
	LeaveCreated = "leave_created"
	LeaveDeleted = "leave_deleted"
)

type LeaveEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	ActorID        string    `json:"actor_id,omitempty"`
	LeaveID        uint      `json:"leave_id"`
	EmployeeID     uint      `json:"employee_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Days           int       `json:"days"`
	AvailableAfter int       `json:"available_after"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Envelope is the subset every event shares; consumers decode it first.
type Envelope struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func Topics() []string {
	return []string{EmployeeLifecycleTopic, LeaveLedgerTopic}
}
