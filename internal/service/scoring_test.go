package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

func TestScoreZeroWhenNotAvailable(t *testing.T) {
	event := &domain.Event{Location: "downtown"}
	for _, availability := range []domain.StaffAvailability{domain.StaffOnShift, domain.StaffOnLeave, domain.StaffSuspended} {
		staff := availableStaff("s1", "Sam", "server")
		staff.Availability = availability
		assert.Zero(t, Score(&staff, "server", event), string(availability))
	}
}

func TestScoreIsNormalized(t *testing.T) {
	event := &domain.Event{Location: "downtown"}
	staff := availableStaff("s1", "Sam", "server")
	staff.Rating = 5.0
	staff.RecentAssignments = 0

	score := Score(&staff, "server", event)
	assert.InDelta(t, 1.0, score, 1e-9, "perfect candidate scores exactly 1")
}

func TestScoreVerifiedSkillBeatsCategoryMatch(t *testing.T) {
	event := &domain.Event{Location: "downtown"}

	verified := availableStaff("s1", "Sam", "server")
	category := availableStaff("s2", "Kim", "server")
	category.Skills = nil

	assert.Greater(t, Score(&verified, "server", event), Score(&category, "server", event))
	assert.Positive(t, Score(&category, "server", event), "category match still earns half the skill weight")
}

func TestScoreIgnoresUnverifiedSkills(t *testing.T) {
	event := &domain.Event{}
	staff := availableStaff("s1", "Sam", "bartender")
	staff.RoleCategory = "kitchen"
	staff.Skills = []domain.Skill{{Name: "server", Status: domain.SkillPending}}

	pendingOnly := Score(&staff, "server", event)
	staff.Skills[0].Status = domain.SkillVerified
	verified := Score(&staff, "server", event)

	assert.Greater(t, verified, pendingOnly)
}

func TestScoreFairnessPrefersLessRecentWork(t *testing.T) {
	event := &domain.Event{Location: "downtown"}

	rested := availableStaff("s1", "Sam", "server")
	busy := availableStaff("s2", "Kim", "server")
	busy.RecentAssignments = 5

	assert.Greater(t, Score(&rested, "server", event), Score(&busy, "server", event))
}

func TestScoreProximityExactLocation(t *testing.T) {
	event := &domain.Event{Location: "downtown"}

	local := availableStaff("s1", "Sam", "server")
	remote := availableStaff("s2", "Kim", "server")
	remote.Location = "uptown"

	assert.Greater(t, Score(&local, "server", event), Score(&remote, "server", event))
}

func TestScoreDeterministic(t *testing.T) {
	event := &domain.Event{Location: "downtown"}
	staff := availableStaff("s1", "Sam", "server")
	staff.Rating = 3.7
	staff.RecentAssignments = 2

	first := Score(&staff, "server", event)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Score(&staff, "server", event))
	}
}
