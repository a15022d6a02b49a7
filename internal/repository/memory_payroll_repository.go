package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// MemoryPayrollRepository implements PayrollRepository with in-memory storage.
type MemoryPayrollRepository struct {
	items   map[string]*domain.PayrollItem
	byShift map[string]string
	mu      sync.RWMutex
}

// NewMemoryPayrollRepository creates an empty in-memory repository.
func NewMemoryPayrollRepository() *MemoryPayrollRepository {
	return &MemoryPayrollRepository{
		items:   make(map[string]*domain.PayrollItem),
		byShift: make(map[string]string),
	}
}

func (r *MemoryPayrollRepository) Create(ctx context.Context, item *domain.PayrollItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *item
	r.items[item.ID] = &clone
	if item.ShiftID != nil {
		r.byShift[*item.ShiftID] = item.ID
	}
	return nil
}

func (r *MemoryPayrollRepository) GetByShift(ctx context.Context, shiftID string) (*domain.PayrollItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byShift[shiftID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r.items[id]
	return &clone, nil
}

func (r *MemoryPayrollRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.PayrollItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.PayrollItem
	for _, stored := range r.items {
		if stored.EventID == eventID {
			result = append(result, *stored)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryPayrollRepository) UpdateStatus(ctx context.Context, id string, status domain.PayrollStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	stored.Status = status
	return nil
}
