package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/events"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

func (f *engineFixture) seedEventWithAssignment(t *testing.T, eventID, staffID string, window domain.TimeWindow, status domain.AssignmentStatus, terms domain.PaymentTerms) *domain.Event {
	t.Helper()
	event := &domain.Event{
		ID:            eventID,
		Title:         "Test Event " + eventID,
		Location:      "downtown",
		Window:        window,
		Status:        domain.EventStatusApproved,
		RequiredRoles: map[string]int{"server": 1},
		Assignments: []domain.Assignment{{
			ID:      "asg-" + eventID,
			EventID: eventID,
			StaffID: staffID,
			Role:    "server",
			Status:  status,
			Terms:   terms,
		}},
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func hourlyTerms(rate float64) domain.PaymentTerms {
	return domain.PaymentTerms{Type: domain.PaymentTypeHourly, Rate: rate}
}

func TestMaterializeRequiresApproval(t *testing.T) {
	f := newEngineFixture(t)
	f.seedEventWithAssignment(t, "evt-1", "s1", testWindow(9, 17), domain.AssignmentStatusPending, hourlyTerms(20))

	_, err := f.shiftSvc.Materialize(context.Background(), testActor, "evt-1", "asg-evt-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_APPROVED"))
}

func TestMaterializeCreatesShift(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.seedEventWithAssignment(t, "evt-1", "s1", testWindow(9, 17), domain.AssignmentStatusApproved, hourlyTerms(22))

	rec := collectEvents(f.dispatcher, events.EventShiftMaterialized)

	shift, err := f.shiftSvc.Materialize(ctx, testActor, "evt-1", "asg-evt-1")
	require.NoError(t, err)

	assert.Equal(t, domain.ShiftStatusScheduled, shift.Status)
	assert.Equal(t, domain.ConfirmationPending, shift.Confirmation)
	assert.Equal(t, testWindow(9, 17), shift.Window, "shift inherits the event window")
	assert.Equal(t, 22.0, shift.HourlyWage)
	require.Len(t, rec.ofType(events.EventShiftMaterialized), 1)

	again, err := f.shiftSvc.Materialize(ctx, testActor, "evt-1", "asg-evt-1")
	require.NoError(t, err)
	assert.Equal(t, shift.ID, again.ID, "materialization is idempotent")
	assert.Len(t, rec.ofType(events.EventShiftMaterialized), 1, "no duplicate event on replay")
}

func TestMaterializeNormalizesWages(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	// 5 hour event window.
	f.seedEventWithAssignment(t, "evt-fixed", "s1", testWindow(9, 14),
		domain.AssignmentStatusApproved, domain.PaymentTerms{Type: domain.PaymentTypeFixed, Rate: 400})
	f.seedEventWithAssignment(t, "evt-daily", "s2", testWindow(9, 14),
		domain.AssignmentStatusApproved, domain.PaymentTerms{Type: domain.PaymentTypeDaily, Rate: 160})

	fixed, err := f.shiftSvc.Materialize(ctx, testActor, "evt-fixed", "asg-evt-fixed")
	require.NoError(t, err)
	assert.InDelta(t, 80.0, fixed.HourlyWage, 1e-9, "fixed pay divided by event duration")

	daily, err := f.shiftSvc.Materialize(ctx, testActor, "evt-daily", "asg-evt-daily")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, daily.HourlyWage, 1e-9, "daily pay divided by the standard workday")
}

func TestMaterializeRefusesOverlappingShift(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.seedEventWithAssignment(t, "evt-1", "s1", testWindow(9, 14), domain.AssignmentStatusApproved, hourlyTerms(20))
	f.seedEventWithAssignment(t, "evt-2", "s1", testWindow(12, 18), domain.AssignmentStatusApproved, hourlyTerms(20))

	_, err := f.shiftSvc.Materialize(ctx, testActor, "evt-1", "asg-evt-1")
	require.NoError(t, err)

	_, err = f.shiftSvc.Materialize(ctx, testActor, "evt-2", "asg-evt-2")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"), "storage-level overlap guard holds across events")
}

func TestMaterializeEventTakesApprovedOnly(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	event := &domain.Event{
		ID:            "evt-1",
		Window:        testWindow(9, 17),
		Status:        domain.EventStatusApproved,
		RequiredRoles: map[string]int{"server": 2, "bartender": 1},
		Assignments: []domain.Assignment{
			{ID: "a1", EventID: "evt-1", StaffID: "s1", Role: "server", Status: domain.AssignmentStatusApproved, Terms: hourlyTerms(20)},
			{ID: "a2", EventID: "evt-1", StaffID: "s2", Role: "server", Status: domain.AssignmentStatusPending, Terms: hourlyTerms(20)},
			{ID: "a3", EventID: "evt-1", StaffID: "s3", Role: "bartender", Status: domain.AssignmentStatusApproved, Terms: hourlyTerms(25)},
		},
	}
	require.NoError(t, f.events.Create(ctx, event))

	shifts, err := f.shiftSvc.MaterializeEvent(ctx, testActor, "evt-1")
	require.NoError(t, err)

	require.Len(t, shifts, 2)
	staffIDs := []string{shifts[0].StaffID, shifts[1].StaffID}
	assert.ElementsMatch(t, []string{"s1", "s3"}, staffIDs)
}

func TestCheckInAndOut(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.staff.Seed(availableStaff("s1", "Sam", "server"))
	f.seedEventWithAssignment(t, "evt-1", "s1", testWindow(9, 17), domain.AssignmentStatusApproved, hourlyTerms(20))

	shift, err := f.shiftSvc.Materialize(ctx, testActor, "evt-1", "asg-evt-1")
	require.NoError(t, err)

	rec := collectEvents(f.dispatcher, events.EventShiftCompleted)

	checkIn := testWindow(9, 17).StartAt
	live, err := f.shiftSvc.CheckIn(ctx, shift.ID, checkIn)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusLive, live.Status)

	// Replayed check-in keeps the original timestamp.
	replayed, err := f.shiftSvc.CheckIn(ctx, shift.ID, checkIn.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, checkIn, *replayed.CheckInAt)

	done, err := f.shiftSvc.CheckOut(ctx, testActor, shift.ID, checkIn.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusCompleted, done.Status)
	assert.InDelta(t, 10.0, done.HoursWorked, 1e-9)
	assert.InDelta(t, 2.0, done.OvertimeHours, 1e-9, "hours past the standard workday are overtime")

	profile, err := f.staff.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CompletedShifts)
	assert.InDelta(t, 1.0, profile.OnTimeRate, 1e-9, "on-time arrival folds into the rolling rate")

	completed := rec.ofType(events.EventShiftCompleted)
	require.Len(t, completed, 1)
	payload := completed[0].Payload.(events.ShiftCompletedPayload)
	assert.True(t, payload.OnTime)
}

func TestCheckOutRequiresCheckIn(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.seedEventWithAssignment(t, "evt-1", "s1", testWindow(9, 17), domain.AssignmentStatusApproved, hourlyTerms(20))

	shift, err := f.shiftSvc.Materialize(ctx, testActor, "evt-1", "asg-evt-1")
	require.NoError(t, err)

	_, err = f.shiftSvc.CheckOut(ctx, testActor, shift.ID, testWindow(9, 17).EndAt)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestCheckOutMustFollowCheckIn(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.staff.Seed(availableStaff("s1", "Sam", "server"))
	f.seedEventWithAssignment(t, "evt-1", "s1", testWindow(9, 17), domain.AssignmentStatusApproved, hourlyTerms(20))

	shift, err := f.shiftSvc.Materialize(ctx, testActor, "evt-1", "asg-evt-1")
	require.NoError(t, err)

	checkIn := testWindow(9, 17).StartAt
	_, err = f.shiftSvc.CheckIn(ctx, shift.ID, checkIn)
	require.NoError(t, err)

	_, err = f.shiftSvc.CheckOut(ctx, testActor, shift.ID, checkIn)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_WINDOW"))
}

func TestConfirmShift(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.seedEventWithAssignment(t, "evt-1", "s1", testWindow(9, 17), domain.AssignmentStatusApproved, hourlyTerms(20))

	shift, err := f.shiftSvc.Materialize(ctx, testActor, "evt-1", "asg-evt-1")
	require.NoError(t, err)

	confirmed, err := f.shiftSvc.Confirm(ctx, shift.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationConfirmed, confirmed.Confirmation)

	declined, err := f.shiftSvc.Confirm(ctx, shift.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationDeclined, declined.Confirmation)
}
