package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/repository"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

const shiftCacheKeyPrefix = "staffing:shifts:"

// AvailabilityService answers whether a staff member is free during a
// window, against all of their non-cancelled shifts across every event.
// A redis-backed per-staff interval cache fronts the shift table; it is a
// derived, rebuildable index and never the source of truth.
type AvailabilityService struct {
	shifts repository.ShiftRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAvailabilityService creates the service. cache may be nil.
func NewAvailabilityService(shifts repository.ShiftRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{shifts: shifts, cache: cache, ttl: ttl, logger: logger}
}

// IsAvailable reports whether no committed shift of the staff member
// overlaps the window.
func (s *AvailabilityService) IsAvailable(ctx context.Context, staffID string, window domain.TimeWindow) (bool, error) {
	conflicts, err := s.ConflictsFor(ctx, staffID, window)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// ConflictsFor returns every non-cancelled shift of the staff member whose
// window overlaps the given one.
func (s *AvailabilityService) ConflictsFor(ctx context.Context, staffID string, window domain.TimeWindow) ([]domain.Shift, error) {
	if err := window.Validate(); err != nil {
		return nil, apperrors.NewInvalidWindow(err.Error(), map[string]any{"staff_id": staffID})
	}

	shifts, err := s.committedShifts(ctx, staffID)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.Shift
	for i := range shifts {
		if shifts[i].Window.Overlaps(window) {
			conflicts = append(conflicts, shifts[i])
		}
	}
	return conflicts, nil
}

// Invalidate drops the cached intervals for a staff member. Called after
// any shift write.
func (s *AvailabilityService) Invalidate(ctx context.Context, staffID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, shiftCacheKeyPrefix+staffID).Err(); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("staff_id", staffID), zap.Error(err))
	}
}

// committedShifts loads the staff member's non-cancelled shifts, consulting
// the cache first. Cache failures degrade to a direct read.
func (s *AvailabilityService) committedShifts(ctx context.Context, staffID string) ([]domain.Shift, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, shiftCacheKeyPrefix+staffID).Bytes()
		if err == nil {
			var cached []domain.Shift
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("availability cache read failed", zap.String("staff_id", staffID), zap.Error(err))
		}
	}

	shifts, err := s.shifts.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(shifts); err == nil {
			if err := s.cache.Set(ctx, shiftCacheKeyPrefix+staffID, raw, s.ttl).Err(); err != nil {
				s.logger.Warn("availability cache write failed", zap.String("staff_id", staffID), zap.Error(err))
			}
		}
	}
	return shifts, nil
}
