package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-engine/internal/api/dto"
	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/repository"
	"github.com/spec-kit/staffing-engine/internal/service"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// StaffHandler exposes read-only staff views: profiles, committed shifts and
// window availability. Profile lifecycle lives in the surrounding platform.
type StaffHandler struct {
	staff        repository.StaffRepository
	shifts       repository.ShiftRepository
	availability *service.AvailabilityService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staff repository.StaffRepository, shifts repository.ShiftRepository, availability *service.AvailabilityService) *StaffHandler {
	return &StaffHandler{staff: staff, shifts: shifts, availability: availability}
}

// List GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	var filter repository.StaffFilter
	if category := c.Query("role_category"); category != "" {
		filter.RoleCategory = &category
	}
	if raw := c.Query("availability"); raw != "" {
		availability := domain.StaffAvailability(raw)
		filter.Availability = &availability
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	profiles, err := h.staff.List(c.UserContext(), filter)
	if err != nil {
		return apperrors.NewStorageUnavailable(err)
	}
	items := make([]dto.StaffProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, dto.NewStaffProfileResponse(&profiles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	profile, err := h.staff.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("staff", map[string]any{"staff_id": c.Params("id")})
		}
		return apperrors.NewStorageUnavailable(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffProfileResponse(profile)})
}

// Shifts GET /staff/:id/shifts.
func (h *StaffHandler) Shifts(c *fiber.Ctx) error {
	shifts, err := h.shifts.ListByStaff(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.NewStorageUnavailable(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponses(shifts)})
}

// Availability GET /staff/:id/availability?start_at=...&end_at=...
func (h *StaffHandler) Availability(c *fiber.Ctx) error {
	startAt, err := time.Parse(time.RFC3339, c.Query("start_at"))
	if err != nil {
		return apperrors.NewValidationError("start_at must be RFC3339", nil)
	}
	endAt, err := time.Parse(time.RFC3339, c.Query("end_at"))
	if err != nil {
		return apperrors.NewValidationError("end_at must be RFC3339", nil)
	}

	window := domain.TimeWindow{StartAt: startAt, EndAt: endAt}
	conflicts, err := h.availability.ConflictsFor(c.UserContext(), c.Params("id"), window)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"staff_id":  c.Params("id"),
		"available": len(conflicts) == 0,
		"conflicts": dto.NewShiftResponses(conflicts),
	}})
}
