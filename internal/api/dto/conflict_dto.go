package dto

import (
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/service"
)

// ProposedSlotRequest is one entry of a schedule to check.
type ProposedSlotRequest struct {
	StaffID string    `json:"staff_id" validate:"required"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at" validate:"required"`
	Label   string    `json:"label"`
}

// ConflictCheckRequest payload.
type ConflictCheckRequest struct {
	Slots []ProposedSlotRequest `json:"slots" validate:"required,min=1,dive"`
}

// ToProposedSlots converts the payload for the detector. Window validity is
// checked by the service, not here.
func (r *ConflictCheckRequest) ToProposedSlots() []service.ProposedSlot {
	slots := make([]service.ProposedSlot, 0, len(r.Slots))
	for _, slot := range r.Slots {
		slots = append(slots, service.ProposedSlot{
			StaffID: slot.StaffID,
			Window:  domain.TimeWindow{StartAt: slot.StartAt, EndAt: slot.EndAt},
			Label:   slot.Label,
		})
	}
	return slots
}

// ConflictWindowResponse names one side of a detected overlap.
type ConflictWindowResponse struct {
	Source  service.ConflictSource `json:"source"`
	ShiftID string                 `json:"shift_id,omitempty"`
	Label   string                 `json:"label,omitempty"`
	StartAt time.Time              `json:"start_at"`
	EndAt   time.Time              `json:"end_at"`
}

// ConflictReportResponse is one overlapping pair.
type ConflictReportResponse struct {
	StaffID string                 `json:"staff_id"`
	First   ConflictWindowResponse `json:"first"`
	Second  ConflictWindowResponse `json:"second"`
}

// NewConflictReportResponses maps detector output in order.
func NewConflictReportResponses(reports []service.ConflictReport) []ConflictReportResponse {
	out := make([]ConflictReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, ConflictReportResponse{
			StaffID: report.StaffID,
			First:   newConflictWindowResponse(report.First),
			Second:  newConflictWindowResponse(report.Second),
		})
	}
	return out
}

func newConflictWindowResponse(w service.ConflictWindow) ConflictWindowResponse {
	return ConflictWindowResponse{
		Source:  w.Source,
		ShiftID: w.ShiftID,
		Label:   w.Label,
		StartAt: w.Window.StartAt,
		EndAt:   w.Window.EndAt,
	}
}
