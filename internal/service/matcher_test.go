package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

func TestRankExcludesIneligibleStaff(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	event := f.seedEvent(t, "evt-1", testWindow(9, 17), map[string]int{"server": 3})
	event.Assignments = []domain.Assignment{
		{ID: "a1", StaffID: "assigned", Role: "server", Status: domain.AssignmentStatusPending},
	}

	suspended := availableStaff("suspended", "Sue", "server")
	suspended.Availability = domain.StaffSuspended

	unrelated := availableStaff("unrelated", "Uri", "bartender")
	unrelated.Skills = nil
	unrelated.Availability = domain.StaffOnLeave

	booked := availableStaff("booked", "Bo", "server")
	require.NoError(t, f.shifts.Create(ctx, &domain.Shift{
		ID:      "shift-1",
		EventID: "other-event",
		StaffID: "booked",
		Role:    "server",
		Window:  testWindow(10, 12),
		Status:  domain.ShiftStatusScheduled,
	}))

	eligible := availableStaff("eligible", "Eli", "server")
	pool := []domain.StaffProfile{
		suspended,
		unrelated,
		booked,
		eligible,
		availableStaff("assigned", "Asa", "server"),
	}

	matcher := NewMatcher(NewAvailabilityService(f.shifts, nil, 0, zapNop()))
	candidates, err := matcher.Rank(ctx, event, "server", pool)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "eligible", candidates[0].Staff.ID)
}

func TestRankEmptyPoolIsNotAnError(t *testing.T) {
	f := newEngineFixture(t)
	event := f.seedEvent(t, "evt-1", testWindow(9, 17), map[string]int{"server": 1})

	matcher := NewMatcher(NewAvailabilityService(f.shifts, nil, 0, zapNop()))
	candidates, err := matcher.Rank(context.Background(), event, "server", nil)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRankOrdersBestFirst(t *testing.T) {
	f := newEngineFixture(t)
	event := f.seedEvent(t, "evt-1", testWindow(9, 17), map[string]int{"server": 3})

	strong := availableStaff("s-strong", "Strong", "server")
	strong.Rating = 5.0

	weaker := availableStaff("s-weaker", "Weaker", "server")
	weaker.Rating = 5.0
	weaker.Location = "uptown"

	weakest := availableStaff("s-weakest", "Weakest", "server")
	weakest.Rating = 2.0
	weakest.Location = "uptown"

	matcher := NewMatcher(NewAvailabilityService(f.shifts, nil, 0, zapNop()))
	candidates, err := matcher.Rank(context.Background(), event, "server", []domain.StaffProfile{weakest, strong, weaker})
	require.NoError(t, err)

	require.Len(t, candidates, 3)
	assert.Equal(t, []string{"s-strong", "s-weaker", "s-weakest"}, []string{
		candidates[0].Staff.ID, candidates[1].Staff.ID, candidates[2].Staff.ID,
	})
}

func TestCandidateTieBreakOrder(t *testing.T) {
	mk := func(id string, score, rating float64, completed int) Candidate {
		return Candidate{Staff: domain.StaffProfile{ID: id, Rating: rating, CompletedShifts: completed}, Score: score}
	}

	assert.True(t, lessCandidate(mk("a", 0.9, 4, 0), mk("b", 0.7, 5, 0)), "score dominates")
	assert.True(t, lessCandidate(mk("a", 0.9, 5, 0), mk("b", 0.9, 4, 0)), "rating breaks score ties")
	assert.True(t, lessCandidate(mk("a", 0.9, 4, 2), mk("b", 0.9, 4, 7)), "fewer completed shifts wins next")
	assert.True(t, lessCandidate(mk("a", 0.9, 4, 2), mk("b", 0.9, 4, 2)), "staff ID is the final total-order key")
	assert.False(t, lessCandidate(mk("b", 0.9, 4, 2), mk("a", 0.9, 4, 2)))
}
