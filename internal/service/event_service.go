package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/repository"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// EventCreateInput carries validated fields for a new event.
type EventCreateInput struct {
	Title         string
	Location      string
	StartAt       time.Time
	EndAt         time.Time
	RequiredRoles map[string]int
}

// EventService covers event lifecycle outside the assignment flow.
type EventService struct {
	events repository.EventRepository
}

// NewEventService creates the service.
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{events: eventRepo}
}

// CreateEvent validates and persists a new event in PENDING state with its
// derived staffing counts computed.
func (s *EventService) CreateEvent(ctx context.Context, input EventCreateInput) (*domain.Event, error) {
	window, err := domain.NewTimeWindow(input.StartAt, input.EndAt)
	if err != nil {
		return nil, apperrors.NewInvalidWindow(err.Error(), nil)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if len(input.RequiredRoles) == 0 {
		return nil, apperrors.NewValidationError("at least one required role", nil)
	}
	for role, count := range input.RequiredRoles {
		if strings.TrimSpace(role) == "" || count <= 0 {
			return nil, apperrors.NewValidationError("role names must be non-empty with positive headcounts", map[string]any{"role": role})
		}
	}

	event := &domain.Event{
		ID:            uuid.NewString(),
		Title:         input.Title,
		Location:      input.Location,
		Window:        window,
		Status:        domain.EventStatusPending,
		RequiredRoles: input.RequiredRoles,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return event, nil
}

// GetEvent loads an event with its assignments.
func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return event, nil
}

// UpdateStatus moves the event through its lifecycle with an optimistic
// version check.
func (s *EventService) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !validEventTransition(event.Status, status) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": event.Status,
			"to":   status,
		})
	}
	if err := s.events.UpdateStatus(ctx, id, status, event.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperrors.NewContention(map[string]any{"event_id": id})
		}
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return s.GetEvent(ctx, id)
}

func validEventTransition(from, to domain.EventStatus) bool {
	switch from {
	case domain.EventStatusPending:
		return to == domain.EventStatusApproved || to == domain.EventStatusCancelled
	case domain.EventStatusApproved:
		return to == domain.EventStatusLive || to == domain.EventStatusCancelled
	case domain.EventStatusLive:
		return to == domain.EventStatusCompleted || to == domain.EventStatusCancelled
	default:
		return false
	}
}
