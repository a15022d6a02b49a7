package domain

import "time"

// ShiftStatus enumerates shift lifecycle states.
type ShiftStatus string

const (
	ShiftStatusPending   ShiftStatus = "PENDING"
	ShiftStatusScheduled ShiftStatus = "SCHEDULED"
	ShiftStatusLive      ShiftStatus = "LIVE"
	ShiftStatusCompleted ShiftStatus = "COMPLETED"
	ShiftStatusCancelled ShiftStatus = "CANCELLED"
)

// ConfirmationStatus tracks the staff member's response to a scheduled shift.
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "PENDING"
	ConfirmationConfirmed ConfirmationStatus = "CONFIRMED"
	ConfirmationDeclined  ConfirmationStatus = "DECLINED"
)

// Shift is a concrete, time-bound work commitment materialized from an
// approved assignment. Invariant: no two non-cancelled shifts of the same
// staff member overlap, regardless of event.
type Shift struct {
	ID            string
	EventID       string
	StaffID       string
	Role          string
	Window        TimeWindow
	Status        ShiftStatus
	Confirmation  ConfirmationStatus
	HourlyWage    float64
	CheckInAt     *time.Time
	CheckOutAt    *time.Time
	HoursWorked   float64
	OvertimeHours float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the shift counts against the staff member's
// availability.
func (s *Shift) Active() bool {
	return s.Status != ShiftStatusCancelled
}

// Completed reports whether the shift has a recorded checkout.
func (s *Shift) Completed() bool {
	return s.Status == ShiftStatusCompleted && s.CheckOutAt != nil
}
