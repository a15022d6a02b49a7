package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// MemoryStaffRepository implements StaffRepository with in-memory storage.
type MemoryStaffRepository struct {
	profiles map[string]*domain.StaffProfile
	mu       sync.RWMutex
}

// NewMemoryStaffRepository creates an empty in-memory repository.
func NewMemoryStaffRepository() *MemoryStaffRepository {
	return &MemoryStaffRepository{profiles: make(map[string]*domain.StaffProfile)}
}

// Seed stores a profile directly, for test setup.
func (r *MemoryStaffRepository) Seed(profiles ...domain.StaffProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range profiles {
		p := profiles[i]
		r.profiles[p.ID] = &p
	}
}

func (r *MemoryStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *stored
	clone.Skills = append([]domain.Skill(nil), stored.Skills...)
	return &clone, nil
}

func (r *MemoryStaffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.StaffProfile
	for _, stored := range r.profiles {
		if filter.Availability != nil && stored.Availability != *filter.Availability {
			continue
		}
		if filter.RoleCategory != nil && stored.RoleCategory != *filter.RoleCategory {
			continue
		}
		clone := *stored
		clone.Skills = append([]domain.Skill(nil), stored.Skills...)
		result = append(result, clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *MemoryStaffRepository) UpdateCounters(ctx context.Context, staffID string, completedShifts int, onTimeRate float64, recentAssignments int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.profiles[staffID]
	if !ok {
		return ErrNotFound
	}
	stored.CompletedShifts = completedShifts
	stored.OnTimeRate = onTimeRate
	stored.RecentAssignments = recentAssignments
	return nil
}
