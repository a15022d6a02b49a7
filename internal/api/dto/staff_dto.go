package dto

import (
	"time"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// StaffProfileResponse represents a staff member as the engine sees them.
type StaffProfileResponse struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	RoleCategory      string                   `json:"role_category"`
	Location          string                   `json:"location"`
	Skills            []SkillResponse          `json:"skills"`
	Rating            float64                  `json:"rating"`
	Availability      domain.StaffAvailability `json:"availability"`
	CompletedShifts   int                      `json:"completed_shifts"`
	OnTimeRate        float64                  `json:"on_time_rate"`
	RecentAssignments int                      `json:"recent_assignments"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// SkillResponse is one claimed capability.
type SkillResponse struct {
	Name   string             `json:"name"`
	Status domain.SkillStatus `json:"status"`
}

// NewStaffProfileResponse maps a profile.
func NewStaffProfileResponse(profile *domain.StaffProfile) StaffProfileResponse {
	skills := make([]SkillResponse, 0, len(profile.Skills))
	for _, skill := range profile.Skills {
		skills = append(skills, SkillResponse{Name: skill.Name, Status: skill.Status})
	}
	return StaffProfileResponse{
		ID:                profile.ID,
		Name:              profile.Name,
		RoleCategory:      profile.RoleCategory,
		Location:          profile.Location,
		Skills:            skills,
		Rating:            profile.Rating,
		Availability:      profile.Availability,
		CompletedShifts:   profile.CompletedShifts,
		OnTimeRate:        profile.OnTimeRate,
		RecentAssignments: profile.RecentAssignments,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}
