package events

import "time"

const (
	EmployeeCreatedTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType  = "employee_created"
)

// EmployeeCreatedEvent is published by the employee directory when a user
// is onboarded.
type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	UserID     string    `json:"user_id"`
	EmpID      string    `json:"emp_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
