package dto

import (
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// MaterializeShiftRequest payload.
type MaterializeShiftRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
}

// CheckInRequest payload. A missing timestamp means "now".
type CheckInRequest struct {
	At *time.Time `json:"at"`
}

// CheckOutRequest payload. A missing timestamp means "now".
type CheckOutRequest struct {
	At *time.Time `json:"at"`
}

// ConfirmShiftRequest payload.
type ConfirmShiftRequest struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

// ShiftResponse represents one materialized shift.
type ShiftResponse struct {
	ID            string                    `json:"id"`
	EventID       string                    `json:"event_id"`
	StaffID       string                    `json:"staff_id"`
	Role          string                    `json:"role"`
	StartAt       time.Time                 `json:"start_at"`
	EndAt         time.Time                 `json:"end_at"`
	Status        domain.ShiftStatus        `json:"status"`
	Confirmation  domain.ConfirmationStatus `json:"confirmation"`
	HourlyWage    float64                   `json:"hourly_wage"`
	CheckInAt     *time.Time                `json:"check_in_at"`
	CheckOutAt    *time.Time                `json:"check_out_at"`
	HoursWorked   float64                   `json:"hours_worked"`
	OvertimeHours float64                   `json:"overtime_hours"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// NewShiftResponse maps a shift.
func NewShiftResponse(shift *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ID:            shift.ID,
		EventID:       shift.EventID,
		StaffID:       shift.StaffID,
		Role:          shift.Role,
		StartAt:       shift.Window.StartAt,
		EndAt:         shift.Window.EndAt,
		Status:        shift.Status,
		Confirmation:  shift.Confirmation,
		HourlyWage:    shift.HourlyWage,
		CheckInAt:     shift.CheckInAt,
		CheckOutAt:    shift.CheckOutAt,
		HoursWorked:   shift.HoursWorked,
		OvertimeHours: shift.OvertimeHours,
		CreatedAt:     shift.CreatedAt,
		UpdatedAt:     shift.UpdatedAt,
	}
}

// NewShiftResponses maps a shift list in order.
func NewShiftResponses(shifts []domain.Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, NewShiftResponse(&shifts[i]))
	}
	return out
}
