package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-engine/internal/config"
	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/events"
	"github.com/spec-kit/staffing-engine/internal/observability"
	"github.com/spec-kit/staffing-engine/internal/repository"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// ShiftService materializes approved assignments into concrete shifts and
// handles check-in/check-out.
type ShiftService struct {
	events       repository.EventRepository
	shifts       repository.ShiftRepository
	staff        repository.StaffRepository
	availability *AvailabilityService
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
	cfg          config.SchedulingConfig
}

// ShiftDependencies bundles collaborators.
type ShiftDependencies struct {
	EventRepo    repository.EventRepository
	ShiftRepo    repository.ShiftRepository
	StaffRepo    repository.StaffRepository
	Availability *AvailabilityService
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// NewShiftService creates the service.
func NewShiftService(cfg config.SchedulingConfig, deps ShiftDependencies) *ShiftService {
	return &ShiftService{
		events:       deps.EventRepo,
		shifts:       deps.ShiftRepo,
		staff:        deps.StaffRepo,
		availability: deps.Availability,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		cfg:          cfg,
	}
}

// Materialize converts an approved assignment into a shift. Idempotent:
// a second call for the same assignment returns the existing shift.
func (s *ShiftService) Materialize(ctx context.Context, actor events.Actor, eventID, assignmentID string) (*domain.Shift, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}

	assignment := event.AssignmentByID(assignmentID)
	if assignment == nil {
		return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": assignmentID})
	}
	if assignment.Status != domain.AssignmentStatusApproved {
		return nil, apperrors.NewNotApproved(map[string]any{"assignment_id": assignmentID, "status": assignment.Status})
	}

	existing, err := s.shifts.GetByAssignment(ctx, eventID, assignment.StaffID, assignment.Role)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	shift := &domain.Shift{
		ID:           uuid.NewString(),
		EventID:      eventID,
		StaffID:      assignment.StaffID,
		Role:         assignment.Role,
		Window:       event.Window,
		Status:       domain.ShiftStatusScheduled,
		Confirmation: domain.ConfirmationPending,
		HourlyWage:   hourlyEquivalent(assignment.Terms, event.Window),
	}

	if err := s.shifts.Create(ctx, shift); err != nil {
		if errors.Is(err, repository.ErrShiftOverlap) {
			return nil, apperrors.NewConflict("staff already booked during window", map[string]any{
				"staff_id": assignment.StaffID,
				"event_id": eventID,
			})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}

	s.availability.Invalidate(ctx, assignment.StaffID)
	s.metrics.ShiftsMaterialized.Inc()
	s.publish(ctx, events.EventShiftMaterialized, actor, eventID, events.ShiftMaterializedPayload{
		ShiftID:      shift.ID,
		AssignmentID: assignment.ID,
		StaffID:      shift.StaffID,
		Role:         shift.Role,
		StartAt:      shift.Window.StartAt,
		EndAt:        shift.Window.EndAt,
		HourlyWage:   shift.HourlyWage,
	})
	return shift, nil
}

// MaterializeEvent materializes every approved assignment on the event.
// Already-materialized assignments are returned as-is.
func (s *ShiftService) MaterializeEvent(ctx context.Context, actor events.Actor, eventID string) ([]domain.Shift, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}

	var shifts []domain.Shift
	for i := range event.Assignments {
		assignment := &event.Assignments[i]
		if assignment.Status != domain.AssignmentStatusApproved {
			continue
		}
		shift, err := s.Materialize(ctx, actor, eventID, assignment.ID)
		if err != nil {
			return shifts, err
		}
		shifts = append(shifts, *shift)
	}
	return shifts, nil
}

// CheckIn records the staff member's arrival and moves the shift live.
func (s *ShiftService) CheckIn(ctx context.Context, shiftID string, at time.Time) (*domain.Shift, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.CheckInAt != nil {
		return shift, nil
	}
	shift.CheckInAt = &at
	shift.Status = domain.ShiftStatusLive
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return shift, nil
}

// CheckOut completes the shift, derives worked and overtime hours, and
// updates the staff member's aggregate counters.
func (s *ShiftService) CheckOut(ctx context.Context, actor events.Actor, shiftID string, at time.Time) (*domain.Shift, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.CheckInAt == nil {
		return nil, apperrors.NewConflict("shift has no recorded check-in", map[string]any{"shift_id": shiftID})
	}
	if shift.CheckOutAt != nil {
		return shift, nil
	}
	if !at.After(*shift.CheckInAt) {
		return nil, apperrors.NewInvalidWindow("checkout must come after check-in", map[string]any{"shift_id": shiftID})
	}

	shift.CheckOutAt = &at
	shift.HoursWorked = at.Sub(*shift.CheckInAt).Hours()
	if shift.HoursWorked > domain.StandardWorkdayHours {
		shift.OvertimeHours = shift.HoursWorked - domain.StandardWorkdayHours
	}
	shift.Status = domain.ShiftStatusCompleted
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	onTime := !shift.CheckInAt.After(shift.Window.StartAt)
	s.applyCompletionCounters(ctx, shift.StaffID, onTime)
	s.availability.Invalidate(ctx, shift.StaffID)
	s.publish(ctx, events.EventShiftCompleted, actor, shift.EventID, events.ShiftCompletedPayload{
		ShiftID:       shift.ID,
		StaffID:       shift.StaffID,
		HoursWorked:   shift.HoursWorked,
		OvertimeHours: shift.OvertimeHours,
		OnTime:        onTime,
	})
	return shift, nil
}

// Confirm records the staff member's response to a scheduled shift.
func (s *ShiftService) Confirm(ctx context.Context, shiftID string, accepted bool) (*domain.Shift, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if accepted {
		shift.Confirmation = domain.ConfirmationConfirmed
	} else {
		shift.Confirmation = domain.ConfirmationDeclined
	}
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return shift, nil
}

func (s *ShiftService) getShift(ctx context.Context, shiftID string) (*domain.Shift, error) {
	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("shift", map[string]any{"shift_id": shiftID})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return shift, nil
}

// applyCompletionCounters folds one completed shift into the staff
// member's rolling stats. Counter drift is tolerable; failures only log.
func (s *ShiftService) applyCompletionCounters(ctx context.Context, staffID string, onTime bool) {
	profile, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		s.logger.Warn("staff counters not updated", zap.String("staff_id", staffID), zap.Error(err))
		return
	}

	completed := profile.CompletedShifts + 1
	onTimeVal := 0.0
	if onTime {
		onTimeVal = 1.0
	}
	rate := (profile.OnTimeRate*float64(profile.CompletedShifts) + onTimeVal) / float64(completed)

	if err := s.staff.UpdateCounters(ctx, staffID, completed, rate, profile.RecentAssignments); err != nil {
		s.logger.Warn("staff counters not updated", zap.String("staff_id", staffID), zap.Error(err))
	}
}

// hourlyEquivalent normalizes payment terms to an hourly wage. Fixed terms
// divide by the event duration; daily terms divide by the standard workday.
func hourlyEquivalent(terms domain.PaymentTerms, window domain.TimeWindow) float64 {
	switch terms.Type {
	case domain.PaymentTypeFixed:
		hours := window.Hours()
		if hours <= 0 {
			return terms.Rate
		}
		return domain.RoundMoney(terms.Rate / hours)
	case domain.PaymentTypeDaily:
		return domain.RoundMoney(terms.Rate / domain.StandardWorkdayHours)
	default:
		return terms.Rate
	}
}

func (s *ShiftService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, eventID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EventID:   eventID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
