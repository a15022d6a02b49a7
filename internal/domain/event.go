package domain

import "time"

// EventStatus enumerates lifecycle states for events.
type EventStatus string

const (
	EventStatusPending   EventStatus = "PENDING"
	EventStatusApproved  EventStatus = "APPROVED"
	EventStatusLive      EventStatus = "LIVE"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// Event is the staffing aggregate: a client engagement with role headcounts
// and the assignments made against them. Version backs optimistic concurrency;
// every committed mutation bumps it.
type Event struct {
	ID            string
	Title         string
	Location      string
	Window        TimeWindow
	Status        EventStatus
	RequiredRoles map[string]int
	Assignments   []Assignment
	StaffRequired int
	StaffAssigned int
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecomputeStaffCounts derives StaffRequired and StaffAssigned from their
// sources of truth. Derived counts are never hand-edited; callers run this
// after every assignment mutation.
func (e *Event) RecomputeStaffCounts() {
	required := 0
	for _, count := range e.RequiredRoles {
		required += count
	}
	assigned := 0
	for i := range e.Assignments {
		if e.Assignments[i].Status == AssignmentStatusApproved {
			assigned++
		}
	}
	e.StaffRequired = required
	e.StaffAssigned = assigned
}

// SlotsTaken counts assignments holding a slot for the role. PENDING and
// APPROVED both consume a slot; REJECTED frees it.
func (e *Event) SlotsTaken(role string) int {
	taken := 0
	for i := range e.Assignments {
		a := &e.Assignments[i]
		if a.Role == role && a.Status != AssignmentStatusRejected {
			taken++
		}
	}
	return taken
}

// OpenSlots returns the remaining headcount for the role.
func (e *Event) OpenSlots(role string) int {
	open := e.RequiredRoles[role] - e.SlotsTaken(role)
	if open < 0 {
		return 0
	}
	return open
}

// HasAssignment reports whether the staff member already holds the role on
// this event (rejected assignments do not count).
func (e *Event) HasAssignment(staffID, role string) bool {
	for i := range e.Assignments {
		a := &e.Assignments[i]
		if a.StaffID == staffID && a.Role == role && a.Status != AssignmentStatusRejected {
			return true
		}
	}
	return false
}

// AssignmentByID locates an assignment on the event.
func (e *Event) AssignmentByID(assignmentID string) *Assignment {
	for i := range e.Assignments {
		if e.Assignments[i].ID == assignmentID {
			return &e.Assignments[i]
		}
	}
	return nil
}
