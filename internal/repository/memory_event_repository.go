package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// MemoryEventRepository implements EventRepository with in-memory storage.
// Useful for testing; it mirrors the versioned-update semantics of the
// postgres implementation exactly.
type MemoryEventRepository struct {
	events map[string]*domain.Event
	mu     sync.RWMutex
}

// NewMemoryEventRepository creates an empty in-memory repository.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[string]*domain.Event)}
}

func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.RecomputeStaffCounts()
	event.Version = 1
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	stored := cloneEvent(event)
	r.events[event.ID] = stored
	return nil
}

func (r *MemoryEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneEvent(stored), nil
}

func (r *MemoryEventRepository) UpdateStatus(ctx context.Context, eventID string, status domain.EventStatus, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[eventID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	stored.Status = status
	stored.Version++
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryEventRepository) AppendAssignment(ctx context.Context, assignment *domain.Assignment, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[assignment.EventID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}
	stored.Assignments = append(stored.Assignments, *assignment)
	stored.Version++
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryEventRepository) SaveAssignmentStatus(ctx context.Context, event *domain.Event, assignmentID string, expectedVersion int64) error {
	updated := event.AssignmentByID(assignmentID)
	if updated == nil {
		return ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[event.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != expectedVersion {
		return ErrVersionConflict
	}

	target := stored.AssignmentByID(assignmentID)
	if target == nil {
		return ErrNotFound
	}
	target.Status = updated.Status
	stored.StaffAssigned = event.StaffAssigned
	stored.Version++
	stored.UpdatedAt = time.Now()
	return nil
}

func cloneEvent(event *domain.Event) *domain.Event {
	clone := *event
	clone.Assignments = append([]domain.Assignment(nil), event.Assignments...)
	clone.RequiredRoles = make(map[string]int, len(event.RequiredRoles))
	for role, count := range event.RequiredRoles {
		clone.RequiredRoles[role] = count
	}
	return &clone
}
