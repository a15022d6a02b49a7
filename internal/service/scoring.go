package service

import (
	"strings"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// ScoreWeights control the relative contribution of each scoring input.
type ScoreWeights struct {
	SkillMatch float64
	Rating     float64
	Fairness   float64
	Proximity  float64
}

// DefaultScoreWeights returns the built-in weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		SkillMatch: 0.40,
		Rating:     0.30,
		Fairness:   0.20,
		Proximity:  0.10,
	}
}

// Score computes the match score for (staff, role, event) with the default
// weights. Pure and deterministic: no I/O, no clock, no randomness.
func Score(staff *domain.StaffProfile, role string, event *domain.Event) float64 {
	return ScoreWith(DefaultScoreWeights(), staff, role, event)
}

// ScoreWith computes the match score with explicit weights. Staff whose
// availability status is not Available score zero and are excluded upstream.
func ScoreWith(w ScoreWeights, staff *domain.StaffProfile, role string, event *domain.Event) float64 {
	if staff.Availability != domain.StaffAvailable {
		return 0
	}

	total := w.SkillMatch + w.Rating + w.Fairness + w.Proximity
	if total <= 0 {
		return 0
	}

	score := w.SkillMatch*skillMatch(staff, role) +
		w.Rating*(staff.Rating/5.0) +
		w.Fairness*fairness(staff) +
		w.Proximity*proximity(staff, event)
	return score / total
}

// skillMatch gives full weight to a verified skill matching the role and
// half weight to a matching role category. Pending and rejected skills gain
// nothing.
func skillMatch(staff *domain.StaffProfile, role string) float64 {
	if staff.HasVerifiedSkill(role) {
		return 1.0
	}
	if strings.EqualFold(staff.RoleCategory, role) {
		return 0.5
	}
	return 0
}

// fairness prefers staff with fewer recent assignments to spread work.
func fairness(staff *domain.StaffProfile) float64 {
	return 1.0 / (1.0 + float64(staff.RecentAssignments))
}

func proximity(staff *domain.StaffProfile, event *domain.Event) float64 {
	if staff.Location != "" && strings.EqualFold(staff.Location, event.Location) {
		return 1.0
	}
	return 0
}
