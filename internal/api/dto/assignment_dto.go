package dto

import (
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/service"
)

// ManualAssignRequest payload.
type ManualAssignRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
	Role    string `json:"role" validate:"required"`
}

// PaymentTermsResponse describes agreed compensation.
type PaymentTermsResponse struct {
	Type       domain.PaymentType `json:"type"`
	Rate       float64            `json:"rate"`
	Hours      float64            `json:"hours"`
	Bonus      float64            `json:"bonus"`
	Deductions float64            `json:"deductions"`
	Allowances float64            `json:"allowances"`
}

// AssignmentResponse represents one role slot pick.
type AssignmentResponse struct {
	ID           string                  `json:"id"`
	EventID      string                  `json:"event_id"`
	StaffID      string                  `json:"staff_id"`
	Role         string                  `json:"role"`
	Status       domain.AssignmentStatus `json:"status"`
	Terms        PaymentTermsResponse    `json:"terms"`
	TotalPayment float64                 `json:"total_payment"`
	AssignedAt   time.Time               `json:"assigned_at"`
}

// NewAssignmentResponse maps an assignment.
func NewAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:      a.ID,
		EventID: a.EventID,
		StaffID: a.StaffID,
		Role:    a.Role,
		Status:  a.Status,
		Terms: PaymentTermsResponse{
			Type:       a.Terms.Type,
			Rate:       a.Terms.Rate,
			Hours:      a.Terms.Hours,
			Bonus:      a.Terms.Bonus,
			Deductions: a.Terms.Deductions,
			Allowances: a.Terms.Allowances,
		},
		TotalPayment: a.TotalPayment,
		AssignedAt:   a.AssignedAt,
	}
}

// RoleOutcomeResponse reports how one role fared during auto-assign.
type RoleOutcomeResponse struct {
	Role      string                 `json:"role"`
	Required  int                    `json:"required"`
	Assigned  int                    `json:"assigned"`
	Unfilled  int                    `json:"unfilled"`
	Contended int                    `json:"contended"`
	Status    service.RoleFillStatus `json:"status"`
}

// AutoAssignResponse summarizes an auto-assign run.
type AutoAssignResponse struct {
	EventID string                `json:"event_id"`
	Roles   []RoleOutcomeResponse `json:"roles"`
	Created []AssignmentResponse  `json:"created"`
}

// NewAutoAssignResponse maps the run result.
func NewAutoAssignResponse(result *service.AssignmentResult) AutoAssignResponse {
	roles := make([]RoleOutcomeResponse, 0, len(result.Roles))
	for _, outcome := range result.Roles {
		roles = append(roles, RoleOutcomeResponse{
			Role:      outcome.Role,
			Required:  outcome.Required,
			Assigned:  outcome.Assigned,
			Unfilled:  outcome.Unfilled,
			Contended: outcome.Contended,
			Status:    outcome.Status,
		})
	}
	created := make([]AssignmentResponse, 0, len(result.Created))
	for i := range result.Created {
		created = append(created, NewAssignmentResponse(&result.Created[i]))
	}
	return AutoAssignResponse{EventID: result.EventID, Roles: roles, Created: created}
}

// CandidateResponse is one ranked entry for a role.
type CandidateResponse struct {
	StaffID         string  `json:"staff_id"`
	Name            string  `json:"name"`
	Rating          float64 `json:"rating"`
	CompletedShifts int     `json:"completed_shifts"`
	Score           float64 `json:"score"`
}

// NewCandidateResponses maps a ranked candidate list in order.
func NewCandidateResponses(candidates []service.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, CandidateResponse{
			StaffID:         c.Staff.ID,
			Name:            c.Staff.Name,
			Rating:          c.Staff.Rating,
			CompletedShifts: c.Staff.CompletedShifts,
			Score:           c.Score,
		})
	}
	return out
}
