package service

import (
	"context"
	"errors"
	"sort"
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

// RoleFillStatus summarizes how a role fared during auto-assignment.
type RoleFillStatus string

const (
	RoleFilled   RoleFillStatus = "FILLED"
	RolePartial  RoleFillStatus = "PARTIAL"
	RoleUnfilled RoleFillStatus = "UNFILLED"
)

// RoleOutcome is the per-role breakdown of an auto-assign run.
type RoleOutcome struct {
	Role      string
	Required  int
	Assigned  int
	Unfilled  int
	Contended int
	Status    RoleFillStatus
}

// AssignmentResult reports an auto-assign run. Partial success is a normal
// shape: a role with no eligible candidates does not fail the call.
type AssignmentResult struct {
	EventID string
	Roles   []RoleOutcome
	Created []domain.Assignment
}

// AssignmentService orchestrates assignment creation against an event,
// enforcing role-count caps and exclusivity with optimistic concurrency on
// the event version.
type AssignmentService struct {
	events       repository.EventRepository
	staff        repository.StaffRepository
	matcher      *Matcher
	availability *AvailabilityService
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
	cfg          config.SchedulingConfig
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	EventRepo    repository.EventRepository
	StaffRepo    repository.StaffRepository
	Matcher      *Matcher
	Availability *AvailabilityService
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(cfg config.SchedulingConfig, deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		events:       deps.EventRepo,
		staff:        deps.StaffRepo,
		matcher:      deps.Matcher,
		availability: deps.Availability,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		cfg:          cfg,
	}
}

// AutoAssign fills every open slot in the event's required roles, taking
// candidates best-first. Each pick is one atomic commit; a candidate lost to
// a concurrent writer is skipped, not fatal. Cancellation between slot
// commits returns the partial result accumulated so far.
func (s *AssignmentService) AutoAssign(ctx context.Context, actor events.Actor, eventID string) (*AssignmentResult, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.mapRepoErr(err, "event", eventID)
	}
	if event.Status == domain.EventStatusCancelled || event.Status == domain.EventStatusCompleted {
		return nil, apperrors.NewConflict("event is not assignable", map[string]any{"event_id": eventID, "status": event.Status})
	}

	pool, err := s.staff.List(ctx, repository.StaffFilter{Limit: s.cfg.AutoAssignCandidateLimit})
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	result := &AssignmentResult{EventID: eventID}
	for _, role := range sortedRoleNames(event.RequiredRoles) {
		outcome := RoleOutcome{Role: role, Required: event.RequiredRoles[role]}

		candidates, err := s.matcher.Rank(ctx, event, role, pool)
		if err != nil {
			return result, err
		}

		idx := 0
		for {
			if ctx.Err() != nil {
				s.finishOutcome(&outcome, event, role)
				result.Roles = append(result.Roles, outcome)
				return result, ctx.Err()
			}

			event, err = s.events.GetByID(ctx, eventID)
			if err != nil {
				return result, s.mapRepoErr(err, "event", eventID)
			}
			if event.OpenSlots(role) == 0 || idx >= len(candidates) {
				break
			}

			candidate := candidates[idx]
			idx++

			assignment, err := s.commitPick(ctx, eventID, role, candidate.Staff.ID, true)
			if err != nil {
				switch {
				case apperrors.IsCode(err, "CONTENTION"):
					outcome.Contended++
					s.metrics.ContentionTotal.Inc()
				case apperrors.IsCode(err, "CONFLICT"):
					s.metrics.AssignmentSkips.WithLabelValues("conflict").Inc()
				case apperrors.IsCode(err, "DUPLICATE_ASSIGNMENT"):
					s.metrics.AssignmentSkips.WithLabelValues("duplicate").Inc()
				case apperrors.IsCode(err, "ROLE_FULL"):
					s.metrics.AssignmentSkips.WithLabelValues("role_full").Inc()
				default:
					return result, err
				}
				continue
			}

			outcome.Assigned++
			result.Created = append(result.Created, *assignment)
			s.metrics.AssignmentsCreated.WithLabelValues("auto").Inc()
			s.publishAssignmentCreated(ctx, actor, assignment, true)
		}

		s.finishOutcome(&outcome, event, role)
		result.Roles = append(result.Roles, outcome)
	}
	return result, nil
}

// Candidates ranks the staff pool for one of the event's roles without
// committing anything.
func (s *AssignmentService) Candidates(ctx context.Context, eventID, role string) ([]Candidate, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.mapRepoErr(err, "event", eventID)
	}
	if _, ok := event.RequiredRoles[role]; !ok {
		return nil, apperrors.NewValidationError("unknown role for event", map[string]any{"role": role})
	}

	pool, err := s.staff.List(ctx, repository.StaffFilter{Limit: s.cfg.AutoAssignCandidateLimit})
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return s.matcher.Rank(ctx, event, role, pool)
}

// ManualAssign performs a single explicit pick with the same re-validation
// as the auto path.
func (s *AssignmentService) ManualAssign(ctx context.Context, actor events.Actor, eventID, staffID, role string) (*domain.Assignment, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, s.mapRepoErr(err, "staff", staffID)
	}
	if staff.Availability == domain.StaffSuspended {
		return nil, apperrors.NewConflict("staff is suspended", map[string]any{"staff_id": staffID})
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.mapRepoErr(err, "event", eventID)
	}
	if _, ok := event.RequiredRoles[role]; !ok {
		return nil, apperrors.NewValidationError("unknown role for event", map[string]any{"role": role})
	}

	assignment, err := s.commitPick(ctx, eventID, role, staffID, false)
	if err != nil {
		return nil, err
	}
	s.metrics.AssignmentsCreated.WithLabelValues("manual").Inc()
	s.publishAssignmentCreated(ctx, actor, assignment, false)
	return assignment, nil
}

// commitPick is the single atomic step shared by both paths: re-read the
// event, re-validate caps, exclusivity and availability, then append the
// PENDING assignment conditionally on the version being unchanged. A lost
// race retries the same pick up to the configured budget.
func (s *AssignmentService) commitPick(ctx context.Context, eventID, role, staffID string, auto bool) (*domain.Assignment, error) {
	retries := s.cfg.CommitRetries
	if retries <= 0 {
		retries = 1
	}

	for attempt := 0; attempt < retries; attempt++ {
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return nil, s.mapRepoErr(err, "event", eventID)
		}
		if event.OpenSlots(role) == 0 {
			return nil, apperrors.NewRoleFull(role, map[string]any{"event_id": eventID})
		}
		if event.HasAssignment(staffID, role) {
			return nil, apperrors.NewDuplicateAssignment(map[string]any{"event_id": eventID, "staff_id": staffID, "role": role})
		}

		free, err := s.availability.IsAvailable(ctx, staffID, event.Window)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, apperrors.NewConflict("staff unavailable during event window", map[string]any{"staff_id": staffID, "event_id": eventID})
		}

		assignment := &domain.Assignment{
			ID:      uuid.NewString(),
			EventID: eventID,
			StaffID: staffID,
			Role:    role,
			Status:  domain.AssignmentStatusPending,
			Terms: domain.PaymentTerms{
				Type:  domain.PaymentTypeHourly,
				Rate:  s.cfg.DefaultHourlyRate,
				Hours: event.Window.Hours(),
			},
			AssignedAt: time.Now(),
		}
		assignment.TotalPayment = assignment.Terms.TotalPayment()

		err = s.events.AppendAssignment(ctx, assignment, event.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.metrics.CommitRetries.Inc()
			continue
		}
		if err != nil {
			return nil, s.mapRepoErr(err, "event", eventID)
		}
		return assignment, nil
	}
	return nil, apperrors.NewContention(map[string]any{"event_id": eventID, "role": role, "staff_id": staffID})
}

// Approve transitions a pending assignment to APPROVED and recomputes the
// event's derived staffing counts in the same conditional write.
func (s *AssignmentService) Approve(ctx context.Context, actor events.Actor, eventID, assignmentID string) (*domain.Assignment, error) {
	return s.transition(ctx, actor, eventID, assignmentID, domain.AssignmentStatusApproved)
}

// Reject transitions a pending assignment to REJECTED, freeing its role slot.
func (s *AssignmentService) Reject(ctx context.Context, actor events.Actor, eventID, assignmentID string) (*domain.Assignment, error) {
	return s.transition(ctx, actor, eventID, assignmentID, domain.AssignmentStatusRejected)
}

func (s *AssignmentService) transition(ctx context.Context, actor events.Actor, eventID, assignmentID string, status domain.AssignmentStatus) (*domain.Assignment, error) {
	retries := s.cfg.CommitRetries
	if retries <= 0 {
		retries = 1
	}

	for attempt := 0; attempt < retries; attempt++ {
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return nil, s.mapRepoErr(err, "event", eventID)
		}
		assignment := event.AssignmentByID(assignmentID)
		if assignment == nil {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": assignmentID})
		}
		if assignment.Status != domain.AssignmentStatusPending {
			return nil, apperrors.NewConflict("assignment is not pending", map[string]any{
				"assignment_id": assignmentID,
				"status":        assignment.Status,
			})
		}

		oldStatus := assignment.Status
		assignment.Status = status
		event.RecomputeStaffCounts()
		if event.StaffAssigned > event.StaffRequired {
			return nil, apperrors.NewRoleFull(assignment.Role, map[string]any{"event_id": eventID})
		}

		err = s.events.SaveAssignmentStatus(ctx, event, assignmentID, event.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.metrics.CommitRetries.Inc()
			continue
		}
		if err != nil {
			return nil, s.mapRepoErr(err, "assignment", assignmentID)
		}

		eventType := events.EventAssignmentApproved
		if status == domain.AssignmentStatusRejected {
			eventType = events.EventAssignmentRejected
		}
		s.publish(ctx, eventType, actor, eventID, events.AssignmentStatusPayload{
			AssignmentID: assignmentID,
			StaffID:      assignment.StaffID,
			Role:         assignment.Role,
			OldStatus:    oldStatus,
			NewStatus:    status,
		})
		result := *assignment
		return &result, nil
	}
	return nil, apperrors.NewContention(map[string]any{"event_id": eventID, "assignment_id": assignmentID})
}

func (s *AssignmentService) finishOutcome(outcome *RoleOutcome, event *domain.Event, role string) {
	outcome.Unfilled = event.OpenSlots(role)
	switch {
	case outcome.Unfilled == 0:
		outcome.Status = RoleFilled
	case outcome.Assigned > 0:
		outcome.Status = RolePartial
	default:
		outcome.Status = RoleUnfilled
	}
}

func (s *AssignmentService) publishAssignmentCreated(ctx context.Context, actor events.Actor, assignment *domain.Assignment, auto bool) {
	s.publish(ctx, events.EventAssignmentCreated, actor, assignment.EventID, events.AssignmentCreatedPayload{
		AssignmentID: assignment.ID,
		StaffID:      assignment.StaffID,
		Role:         assignment.Role,
		Auto:         auto,
	})
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, eventID string, payload any) {
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

func (s *AssignmentService) mapRepoErr(err error, resource, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.NewStorageUnavailable(err)
}

func sortedRoleNames(roles map[string]int) []string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
