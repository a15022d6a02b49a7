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

// PayrollService derives payroll items from worked shifts. Items are never
// hand-constructed: every amount is a pure function of the shift and the
// assignment's payment terms.
type PayrollService struct {
	eventRepo  repository.EventRepository
	shifts     repository.ShiftRepository
	payroll    repository.PayrollRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	cfg        config.SchedulingConfig
}

// PayrollDependencies bundles collaborators.
type PayrollDependencies struct {
	EventRepo   repository.EventRepository
	ShiftRepo   repository.ShiftRepository
	PayrollRepo repository.PayrollRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// NewPayrollService creates the service.
func NewPayrollService(cfg config.SchedulingConfig, deps PayrollDependencies) *PayrollService {
	return &PayrollService{
		eventRepo:  deps.EventRepo,
		shifts:     deps.ShiftRepo,
		payroll:    deps.PayrollRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		cfg:        cfg,
	}
}

// Derive computes the payroll item for a completed shift. Idempotent: an
// already-derived shift returns its existing item.
func (s *PayrollService) Derive(ctx context.Context, actor events.Actor, shiftID string) (*domain.PayrollItem, error) {
	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("shift", map[string]any{"shift_id": shiftID})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	if !shift.Completed() {
		return nil, apperrors.NewConflict("shift has no recorded checkout", map[string]any{"shift_id": shiftID})
	}
	return s.deriveFromShift(ctx, actor, shift)
}

// DeriveForEvent derives one item per completed shift of the event. Shifts
// without a recorded checkout are skipped, not errors.
func (s *PayrollService) DeriveForEvent(ctx context.Context, actor events.Actor, eventID string) ([]domain.PayrollItem, error) {
	shifts, err := s.shifts.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	var items []domain.PayrollItem
	for i := range shifts {
		shift := shifts[i]
		if !shift.Completed() {
			continue
		}
		item, err := s.deriveFromShift(ctx, actor, &shift)
		if err != nil {
			return items, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// ListForEvent returns every derived item for the event.
func (s *PayrollService) ListForEvent(ctx context.Context, eventID string) ([]domain.PayrollItem, error) {
	items, err := s.payroll.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return items, nil
}

// MarkStatus advances an item through Unpaid -> Processing -> Paid.
func (s *PayrollService) MarkStatus(ctx context.Context, itemID string, status domain.PayrollStatus) error {
	if err := s.payroll.UpdateStatus(ctx, itemID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("payroll item", map[string]any{"payroll_item_id": itemID})
		}
		return apperrors.NewStorageUnavailable(err)
	}
	return nil
}

func (s *PayrollService) deriveFromShift(ctx context.Context, actor events.Actor, shift *domain.Shift) (*domain.PayrollItem, error) {
	existing, err := s.payroll.GetByShift(ctx, shift.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	terms := s.termsFor(ctx, shift)
	shiftID := shift.ID
	item := &domain.PayrollItem{
		ID:            uuid.NewString(),
		StaffID:       shift.StaffID,
		EventID:       shift.EventID,
		ShiftID:       &shiftID,
		HoursWorked:   shift.HoursWorked,
		HourlyRate:    shift.HourlyWage,
		OvertimeHours: shift.OvertimeHours,
		OvertimeRate:  domain.RoundMoney(shift.HourlyWage * s.cfg.OvertimeMultiplier),
		Bonus:         terms.Bonus,
		Deductions:    terms.Deductions,
		Allowances:    terms.Allowances,
		Status:        domain.PayrollStatusUnpaid,
		DerivedAt:     time.Now(),
	}
	item.ComputeTotal()
	if item.NeedsReview {
		s.logger.Warn("payroll total clamped to zero, flagged for review",
			zap.String("shift_id", shift.ID),
			zap.String("staff_id", shift.StaffID),
		)
	}

	if err := s.payroll.Create(ctx, item); err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	review := "false"
	if item.NeedsReview {
		review = "true"
	}
	s.metrics.PayrollItems.WithLabelValues(review).Inc()
	s.publish(ctx, actor, shift.EventID, events.PayrollDerivedPayload{
		PayrollItemID: item.ID,
		ShiftID:       shift.ID,
		StaffID:       shift.StaffID,
		TotalAmount:   item.TotalAmount,
		NeedsReview:   item.NeedsReview,
	})
	return item, nil
}

// termsFor finds the assignment backing the shift for bonus, deduction and
// allowance amounts. A missing assignment leaves them at zero.
func (s *PayrollService) termsFor(ctx context.Context, shift *domain.Shift) domain.PaymentTerms {
	event, err := s.eventRepo.GetByID(ctx, shift.EventID)
	if err != nil {
		s.logger.Warn("payroll derived without assignment terms", zap.String("shift_id", shift.ID), zap.Error(err))
		return domain.PaymentTerms{}
	}
	for i := range event.Assignments {
		a := &event.Assignments[i]
		if a.StaffID == shift.StaffID && a.Role == shift.Role && a.Status == domain.AssignmentStatusApproved {
			return a.Terms
		}
	}
	return domain.PaymentTerms{}
}

func (s *PayrollService) publish(ctx context.Context, actor events.Actor, eventID string, payload events.PayrollDerivedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPayrollDerived,
		EventID:   eventID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
