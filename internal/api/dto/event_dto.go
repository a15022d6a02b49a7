package dto

import (
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	Title         string         `json:"title" validate:"required"`
	Location      string         `json:"location"`
	StartAt       time.Time      `json:"start_at" validate:"required"`
	EndAt         time.Time      `json:"end_at" validate:"required"`
	RequiredRoles map[string]int `json:"required_roles" validate:"required,min=1"`
}

// UpdateEventStatusRequest payload.
type UpdateEventStatusRequest struct {
	Status domain.EventStatus `json:"status" validate:"required,oneof=APPROVED LIVE COMPLETED CANCELLED"`
}

// EventResponse provides full event info with its assignments.
type EventResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Location      string               `json:"location"`
	StartAt       time.Time            `json:"start_at"`
	EndAt         time.Time            `json:"end_at"`
	Status        domain.EventStatus   `json:"status"`
	RequiredRoles map[string]int       `json:"required_roles"`
	StaffRequired int                  `json:"staff_required"`
	StaffAssigned int                  `json:"staff_assigned"`
	Assignments   []AssignmentResponse `json:"assignments"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NewEventResponse maps the aggregate.
func NewEventResponse(event *domain.Event) EventResponse {
	assignments := make([]AssignmentResponse, 0, len(event.Assignments))
	for i := range event.Assignments {
		assignments = append(assignments, NewAssignmentResponse(&event.Assignments[i]))
	}
	return EventResponse{
		ID:            event.ID,
		Title:         event.Title,
		Location:      event.Location,
		StartAt:       event.Window.StartAt,
		EndAt:         event.Window.EndAt,
		Status:        event.Status,
		RequiredRoles: event.RequiredRoles,
		StaffRequired: event.StaffRequired,
		StaffAssigned: event.StaffAssigned,
		Assignments:   assignments,
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,
	}
}
