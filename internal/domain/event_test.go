package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func staffedEvent() *Event {
	return &Event{
		ID:            "evt-1",
		RequiredRoles: map[string]int{"server": 2, "bartender": 1},
		Assignments: []Assignment{
			{ID: "a1", StaffID: "s1", Role: "server", Status: AssignmentStatusApproved},
			{ID: "a2", StaffID: "s2", Role: "server", Status: AssignmentStatusPending},
			{ID: "a3", StaffID: "s3", Role: "server", Status: AssignmentStatusRejected},
			{ID: "a4", StaffID: "s4", Role: "bartender", Status: AssignmentStatusPending},
		},
	}
}

func TestRecomputeStaffCounts(t *testing.T) {
	event := staffedEvent()
	event.RecomputeStaffCounts()

	assert.Equal(t, 3, event.StaffRequired)
	assert.Equal(t, 1, event.StaffAssigned, "only approved assignments count")
}

func TestSlotAccounting(t *testing.T) {
	event := staffedEvent()

	assert.Equal(t, 2, event.SlotsTaken("server"), "pending and approved hold slots, rejected does not")
	assert.Equal(t, 0, event.OpenSlots("server"))
	assert.Equal(t, 1, event.SlotsTaken("bartender"))
	assert.Equal(t, 0, event.OpenSlots("bartender"))
	assert.Equal(t, 0, event.OpenSlots("unknown"))
}

func TestOpenSlotsNeverNegative(t *testing.T) {
	event := staffedEvent()
	event.RequiredRoles["server"] = 1

	assert.Equal(t, 0, event.OpenSlots("server"))
}

func TestHasAssignment(t *testing.T) {
	event := staffedEvent()

	assert.True(t, event.HasAssignment("s1", "server"))
	assert.True(t, event.HasAssignment("s2", "server"), "pending blocks re-assignment")
	assert.False(t, event.HasAssignment("s3", "server"), "rejected frees the pairing")
	assert.False(t, event.HasAssignment("s1", "bartender"))
}

func TestAssignmentByID(t *testing.T) {
	event := staffedEvent()

	assert.Equal(t, "s2", event.AssignmentByID("a2").StaffID)
	assert.Nil(t, event.AssignmentByID("missing"))
}
