package domain

import (
	"strings"
	"time"
)

// StaffAvailability enumerates a staff member's current availability state.
type StaffAvailability string

const (
	StaffAvailable StaffAvailability = "AVAILABLE"
	StaffOnShift   StaffAvailability = "ON_SHIFT"
	StaffOnLeave   StaffAvailability = "LEAVE"
	StaffSuspended StaffAvailability = "SUSPENDED"
)

// SkillStatus enumerates verification states for a claimed skill.
type SkillStatus string

const (
	SkillVerified SkillStatus = "VERIFIED"
	SkillPending  SkillStatus = "PENDING"
	SkillRejected SkillStatus = "REJECTED"
)

// Skill is a named capability with a verification status. Only verified
// skills count toward role matching.
type Skill struct {
	Name   string
	Status SkillStatus
}

// StaffProfile models a staff member from the engine's perspective.
// Read-only except for the aggregate counters updated after shift completion.
type StaffProfile struct {
	ID                string
	Name              string
	RoleCategory      string
	Location          string
	Skills            []Skill
	Rating            float64
	Availability      StaffAvailability
	CompletedShifts   int
	OnTimeRate        float64
	RecentAssignments int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasVerifiedSkill reports whether the profile carries a verified skill
// matching the role name, case-insensitively.
func (p *StaffProfile) HasVerifiedSkill(role string) bool {
	for _, skill := range p.Skills {
		if skill.Status == SkillVerified && strings.EqualFold(skill.Name, role) {
			return true
		}
	}
	return false
}
