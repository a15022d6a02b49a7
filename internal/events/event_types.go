package events

import (
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// EventType enumerates supported domain event identifiers.
type EventType string

const (
	EventAssignmentCreated  EventType = "assignment_created"
	EventAssignmentApproved EventType = "assignment_approved"
	EventAssignmentRejected EventType = "assignment_rejected"
	EventShiftMaterialized  EventType = "shift_materialized"
	EventShiftCompleted     EventType = "shift_completed"
	EventPayrollDerived     EventType = "payroll_derived"
	EventConflictDetected   EventType = "conflict_detected"
)

// Actor identifies who triggered an event, for audit attribution only.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role,omitempty"`
}

// Event is a domain event emitted by the engine as plain data. Delivery and
// formatting are external concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EventID   string      `json:"event_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AssignmentCreatedPayload payload.
type AssignmentCreatedPayload struct {
	AssignmentID string `json:"assignment_id"`
	StaffID      string `json:"staff_id"`
	Role         string `json:"role"`
	Auto         bool   `json:"auto"`
}

// AssignmentStatusPayload payload for approval/rejection.
type AssignmentStatusPayload struct {
	AssignmentID string                  `json:"assignment_id"`
	StaffID      string                  `json:"staff_id"`
	Role         string                  `json:"role"`
	OldStatus    domain.AssignmentStatus `json:"old_status"`
	NewStatus    domain.AssignmentStatus `json:"new_status"`
}

// ShiftMaterializedPayload payload.
type ShiftMaterializedPayload struct {
	ShiftID      string    `json:"shift_id"`
	AssignmentID string    `json:"assignment_id"`
	StaffID      string    `json:"staff_id"`
	Role         string    `json:"role"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	HourlyWage   float64   `json:"hourly_wage"`
}

// ShiftCompletedPayload payload.
type ShiftCompletedPayload struct {
	ShiftID       string  `json:"shift_id"`
	StaffID       string  `json:"staff_id"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
	OnTime        bool    `json:"on_time"`
}

// PayrollDerivedPayload payload.
type PayrollDerivedPayload struct {
	PayrollItemID string  `json:"payroll_item_id"`
	ShiftID       string  `json:"shift_id"`
	StaffID       string  `json:"staff_id"`
	TotalAmount   float64 `json:"total_amount"`
	NeedsReview   bool    `json:"needs_review"`
}

// ConflictDetectedPayload payload.
type ConflictDetectedPayload struct {
	StaffID string `json:"staff_id"`
	Count   int    `json:"count"`
}
