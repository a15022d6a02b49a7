package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-engine/internal/api/dto"
	"github.com/spec-kit/staffing-engine/internal/service"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// ShiftsHandler manages shift materialization and attendance endpoints.
type ShiftsHandler struct {
	shifts *service.ShiftService
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(shifts *service.ShiftService) *ShiftsHandler {
	return &ShiftsHandler{shifts: shifts}
}

// Materialize POST /events/:id/shifts.
func (h *ShiftsHandler) Materialize(c *fiber.Ctx) error {
	var req dto.MaterializeShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	actor := actorFromContext(c)
	shift, err := h.shifts.Materialize(c.UserContext(), actor, c.Params("id"), req.AssignmentID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// MaterializeEvent POST /events/:id/shifts/materialize-all.
func (h *ShiftsHandler) MaterializeEvent(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	shifts, err := h.shifts.MaterializeEvent(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponses(shifts)})
}

// CheckIn POST /shifts/:id/check-in.
func (h *ShiftsHandler) CheckIn(c *fiber.Ctx) error {
	var req dto.CheckInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	shift, err := h.shifts.CheckIn(c.UserContext(), c.Params("id"), timeOrNow(req.At))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// CheckOut POST /shifts/:id/check-out.
func (h *ShiftsHandler) CheckOut(c *fiber.Ctx) error {
	var req dto.CheckOutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	actor := actorFromContext(c)
	shift, err := h.shifts.CheckOut(c.UserContext(), actor, c.Params("id"), timeOrNow(req.At))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// Confirm POST /shifts/:id/confirm.
func (h *ShiftsHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	shift, err := h.shifts.Confirm(c.UserContext(), c.Params("id"), *req.Accepted)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

func timeOrNow(at *time.Time) time.Time {
	if at != nil {
		return *at
	}
	return time.Now()
}
