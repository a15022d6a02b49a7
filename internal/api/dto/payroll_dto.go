package dto

import (
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// MarkPayrollStatusRequest payload.
type MarkPayrollStatusRequest struct {
	Status domain.PayrollStatus `json:"status" validate:"required,oneof=UNPAID PROCESSING PAID"`
}

// PayrollItemResponse represents one derived payable line.
type PayrollItemResponse struct {
	ID            string               `json:"id"`
	StaffID       string               `json:"staff_id"`
	EventID       string               `json:"event_id"`
	ShiftID       *string              `json:"shift_id"`
	HoursWorked   float64              `json:"hours_worked"`
	HourlyRate    float64              `json:"hourly_rate"`
	OvertimeHours float64              `json:"overtime_hours"`
	OvertimeRate  float64              `json:"overtime_rate"`
	Bonus         float64              `json:"bonus"`
	Deductions    float64              `json:"deductions"`
	Allowances    float64              `json:"allowances"`
	TotalAmount   float64              `json:"total_amount"`
	Status        domain.PayrollStatus `json:"status"`
	NeedsReview   bool                 `json:"needs_review"`
	DerivedAt     time.Time            `json:"derived_at"`
}

// NewPayrollItemResponse maps a payroll item.
func NewPayrollItemResponse(item *domain.PayrollItem) PayrollItemResponse {
	return PayrollItemResponse{
		ID:            item.ID,
		StaffID:       item.StaffID,
		EventID:       item.EventID,
		ShiftID:       item.ShiftID,
		HoursWorked:   item.HoursWorked,
		HourlyRate:    item.HourlyRate,
		OvertimeHours: item.OvertimeHours,
		OvertimeRate:  item.OvertimeRate,
		Bonus:         item.Bonus,
		Deductions:    item.Deductions,
		Allowances:    item.Allowances,
		TotalAmount:   item.TotalAmount,
		Status:        item.Status,
		NeedsReview:   item.NeedsReview,
		DerivedAt:     item.DerivedAt,
	}
}

// NewPayrollItemResponses maps a list in order.
func NewPayrollItemResponses(items []domain.PayrollItem) []PayrollItemResponse {
	out := make([]PayrollItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewPayrollItemResponse(&items[i]))
	}
	return out
}
