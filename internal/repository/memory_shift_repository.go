package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// MemoryShiftRepository implements ShiftRepository with in-memory storage,
// including the per-staff overlap guard on Create.
type MemoryShiftRepository struct {
	shifts map[string]*domain.Shift
	mu     sync.Mutex
}

// NewMemoryShiftRepository creates an empty in-memory repository.
func NewMemoryShiftRepository() *MemoryShiftRepository {
	return &MemoryShiftRepository{shifts: make(map[string]*domain.Shift)}
}

func (r *MemoryShiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.shifts {
		if existing.StaffID != shift.StaffID || !existing.Active() {
			continue
		}
		if existing.Window.Overlaps(shift.Window) {
			return ErrShiftOverlap
		}
	}

	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now
	clone := *shift
	r.shifts[shift.ID] = &clone
	return nil
}

func (r *MemoryShiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.shifts[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *stored
	return &clone, nil
}

func (r *MemoryShiftRepository) GetByAssignment(ctx context.Context, eventID, staffID, role string) (*domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.shifts {
		if stored.EventID == eventID && stored.StaffID == staffID && stored.Role == role && stored.Active() {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryShiftRepository) ListByStaff(ctx context.Context, staffID string) ([]domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Shift
	for _, stored := range r.shifts {
		if stored.StaffID == staffID && stored.Active() {
			result = append(result, *stored)
		}
	}
	sortShifts(result)
	return result, nil
}

func (r *MemoryShiftRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Shift
	for _, stored := range r.shifts {
		if stored.EventID == eventID {
			result = append(result, *stored)
		}
	}
	sortShifts(result)
	return result, nil
}

func (r *MemoryShiftRepository) Update(ctx context.Context, shift *domain.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.shifts[shift.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = shift.Status
	stored.Confirmation = shift.Confirmation
	stored.CheckInAt = shift.CheckInAt
	stored.CheckOutAt = shift.CheckOutAt
	stored.HoursWorked = shift.HoursWorked
	stored.OvertimeHours = shift.OvertimeHours
	stored.UpdatedAt = time.Now()
	return nil
}

func sortShifts(shifts []domain.Shift) {
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Window.StartAt.Equal(shifts[j].Window.StartAt) {
			return shifts[i].ID < shifts[j].ID
		}
		return shifts[i].Window.StartAt.Before(shifts[j].Window.StartAt)
	})
}
