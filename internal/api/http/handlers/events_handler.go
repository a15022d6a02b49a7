package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-engine/internal/api/dto"
	"github.com/spec-kit/staffing-engine/internal/auth"
	"github.com/spec-kit/staffing-engine/internal/events"
	"github.com/spec-kit/staffing-engine/internal/service"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// EventsHandler manages event and assignment endpoints.
type EventsHandler struct {
	events      *service.EventService
	assignments *service.AssignmentService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(events *service.EventService, assignments *service.AssignmentService) *EventsHandler {
	return &EventsHandler{events: events, assignments: assignments}
}

// CreateEvent POST /events.
func (h *EventsHandler) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	event, err := h.events.CreateEvent(c.UserContext(), service.EventCreateInput{
		Title:         req.Title,
		Location:      req.Location,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		RequiredRoles: req.RequiredRoles,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// GetEvent GET /events/:id.
func (h *EventsHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.events.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// UpdateStatus PATCH /events/:id/status.
func (h *EventsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateEventStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	event, err := h.events.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Candidates GET /events/:id/roles/:role/candidates.
func (h *EventsHandler) Candidates(c *fiber.Ctx) error {
	candidates, err := h.assignments.Candidates(c.UserContext(), c.Params("id"), c.Params("role"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCandidateResponses(candidates)})
}

// AutoAssign POST /events/:id/auto-assign.
func (h *EventsHandler) AutoAssign(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	result, err := h.assignments.AutoAssign(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAutoAssignResponse(result)})
}

// ManualAssign POST /events/:id/assignments.
func (h *EventsHandler) ManualAssign(c *fiber.Ctx) error {
	var req dto.ManualAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	actor := actorFromContext(c)
	assignment, err := h.assignments.ManualAssign(c.UserContext(), actor, c.Params("id"), req.StaffID, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssignmentResponse(assignment)})
}

// ApproveAssignment POST /events/:id/assignments/:assignmentID/approve.
func (h *EventsHandler) ApproveAssignment(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	assignment, err := h.assignments.Approve(c.UserContext(), actor, c.Params("id"), c.Params("assignmentID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssignmentResponse(assignment)})
}

// RejectAssignment POST /events/:id/assignments/:assignmentID/reject.
func (h *EventsHandler) RejectAssignment(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	assignment, err := h.assignments.Reject(c.UserContext(), actor, c.Params("id"), c.Params("assignmentID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssignmentResponse(assignment)})
}

func actorFromContext(c *fiber.Ctx) events.Actor {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Actor()
	}
	return events.Actor{}
}
