package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-engine/internal/api/dto"
	"github.com/spec-kit/staffing-engine/internal/service"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// ConflictsHandler exposes the schedule conflict detector.
type ConflictsHandler struct {
	conflicts *service.ConflictService
}

// NewConflictsHandler constructs handler.
func NewConflictsHandler(conflicts *service.ConflictService) *ConflictsHandler {
	return &ConflictsHandler{conflicts: conflicts}
}

// Detect POST /conflicts/check.
func (h *ConflictsHandler) Detect(c *fiber.Ctx) error {
	var req dto.ConflictCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(&req); err != nil {
		return err
	}

	reports, err := h.conflicts.DetectConflicts(c.UserContext(), req.ToProposedSlots())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewConflictReportResponses(reports)})
}
