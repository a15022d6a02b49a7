package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-engine/internal/api/dto"
	"github.com/spec-kit/staffing-engine/internal/service"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// PayrollHandler manages payroll derivation endpoints.
type PayrollHandler struct {
	payroll *service.PayrollService
}

// NewPayrollHandler constructs handler.
func NewPayrollHandler(payroll *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

// DeriveShift POST /shifts/:id/payroll.
func (h *PayrollHandler) DeriveShift(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	item, err := h.payroll.Derive(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPayrollItemResponse(item)})
}

// DeriveEvent POST /events/:id/payroll.
func (h *PayrollHandler) DeriveEvent(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	items, err := h.payroll.DeriveForEvent(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPayrollItemResponses(items)})
}

// ListForEvent GET /events/:id/payroll.
func (h *PayrollHandler) ListForEvent(c *fiber.Ctx) error {
	items, err := h.payroll.ListForEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPayrollItemResponses(items)})
}

// MarkStatus PATCH /payroll/:id/status.
func (h *PayrollHandler) MarkStatus(c *fiber.Ctx) error {
	var req dto.MarkPayrollStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	if err := h.payroll.MarkStatus(c.UserContext(), c.Params("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id"), "status": req.Status}})
}
