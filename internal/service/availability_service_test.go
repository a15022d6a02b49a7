package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-engine/internal/domain"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

func TestIsAvailableRejectsInvalidWindow(t *testing.T) {
	f := newEngineFixture(t)
	availability := NewAvailabilityService(f.shifts, nil, 0, zapNop())

	_, err := availability.IsAvailable(context.Background(), "s1", domain.TimeWindow{
		StartAt: testBase.Add(2), EndAt: testBase,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_WINDOW"))
}

func TestIsAvailableChecksShiftsAcrossEvents(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	availability := NewAvailabilityService(f.shifts, nil, 0, zapNop())

	require.NoError(t, f.shifts.Create(ctx, &domain.Shift{
		ID:      "shift-1",
		EventID: "evt-other",
		StaffID: "s1",
		Role:    "server",
		Window:  testWindow(9, 13),
		Status:  domain.ShiftStatusScheduled,
	}))

	free, err := availability.IsAvailable(ctx, "s1", testWindow(12, 18))
	require.NoError(t, err)
	assert.False(t, free, "shift on another event blocks the window")

	free, err = availability.IsAvailable(ctx, "s1", testWindow(13, 18))
	require.NoError(t, err)
	assert.True(t, free, "adjacent windows do not collide")

	free, err = availability.IsAvailable(ctx, "s2", testWindow(9, 13))
	require.NoError(t, err)
	assert.True(t, free, "other staff unaffected")
}

func TestConflictsForIgnoresCancelledShifts(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	availability := NewAvailabilityService(f.shifts, nil, 0, zapNop())

	shift := &domain.Shift{
		ID:      "shift-1",
		EventID: "evt-1",
		StaffID: "s1",
		Role:    "server",
		Window:  testWindow(9, 13),
		Status:  domain.ShiftStatusScheduled,
	}
	require.NoError(t, f.shifts.Create(ctx, shift))

	shift.Status = domain.ShiftStatusCancelled
	require.NoError(t, f.shifts.Update(ctx, shift))

	conflicts, err := availability.ConflictsFor(ctx, "s1", testWindow(10, 12))
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}
