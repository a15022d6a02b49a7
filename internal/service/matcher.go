package service

import (
	"context"
	"sort"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// Candidate pairs a staff profile with its match score for a role.
type Candidate struct {
	Staff domain.StaffProfile
	Score float64
}

// Matcher ranks a staff pool against an event role. It never mutates state.
type Matcher struct {
	availability *AvailabilityService
	weights      ScoreWeights
}

// NewMatcher creates a matcher using the default score weights.
func NewMatcher(availability *AvailabilityService) *Matcher {
	return &Matcher{availability: availability, weights: DefaultScoreWeights()}
}

// Rank returns eligible candidates ordered best-first. Excluded: suspended
// staff, staff scoring zero (non-available), staff already holding this role
// on this event, and staff failing the availability check for the event
// window. An empty result is a normal outcome, not an error.
func (m *Matcher) Rank(ctx context.Context, event *domain.Event, role string, pool []domain.StaffProfile) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(pool))
	for i := range pool {
		staff := pool[i]
		if staff.Availability == domain.StaffSuspended {
			continue
		}
		if event.HasAssignment(staff.ID, role) {
			continue
		}
		score := ScoreWith(m.weights, &staff, role, event)
		if score == 0 {
			continue
		}
		free, err := m.availability.IsAvailable(ctx, staff.ID, event.Window)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}
		candidates = append(candidates, Candidate{Staff: staff, Score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return lessCandidate(candidates[i], candidates[j])
	})
	return candidates, nil
}

// lessCandidate defines the total order: score desc, rating desc,
// completedShifts asc (favor underutilized staff), staff ID asc.
func lessCandidate(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Staff.Rating != b.Staff.Rating {
		return a.Staff.Rating > b.Staff.Rating
	}
	if a.Staff.CompletedShifts != b.Staff.CompletedShifts {
		return a.Staff.CompletedShifts < b.Staff.CompletedShifts
	}
	return a.Staff.ID < b.Staff.ID
}
