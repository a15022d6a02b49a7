package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/staffing-engine/internal/domain"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

func TestCreateEvent(t *testing.T) {
	f := newEngineFixture(t)
	svc := NewEventService(f.events)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, EventCreateInput{
		Title:         "Summer Gala",
		Location:      "downtown",
		StartAt:       testBase.Add(9 * time.Hour),
		EndAt:         testBase.Add(17 * time.Hour),
		RequiredRoles: map[string]int{"server": 3, "bartender": 1},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.EventStatusPending, event.Status)
	assert.Equal(t, 4, event.StaffRequired)
	assert.Zero(t, event.StaffAssigned)
}

func TestCreateEventValidation(t *testing.T) {
	f := newEngineFixture(t)
	svc := NewEventService(f.events)
	ctx := context.Background()

	valid := EventCreateInput{
		Title:         "Summer Gala",
		StartAt:       testBase.Add(9 * time.Hour),
		EndAt:         testBase.Add(17 * time.Hour),
		RequiredRoles: map[string]int{"server": 1},
	}

	badWindow := valid
	badWindow.EndAt = badWindow.StartAt
	_, err := svc.CreateEvent(ctx, badWindow)
	assert.True(t, apperrors.IsCode(err, "INVALID_WINDOW"))

	noTitle := valid
	noTitle.Title = "  "
	_, err = svc.CreateEvent(ctx, noTitle)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	noRoles := valid
	noRoles.RequiredRoles = nil
	_, err = svc.CreateEvent(ctx, noRoles)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	badCount := valid
	badCount.RequiredRoles = map[string]int{"server": 0}
	_, err = svc.CreateEvent(ctx, badCount)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestEventStatusTransitions(t *testing.T) {
	f := newEngineFixture(t)
	svc := NewEventService(f.events)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, EventCreateInput{
		Title:         "Summer Gala",
		StartAt:       testBase.Add(9 * time.Hour),
		EndAt:         testBase.Add(17 * time.Hour),
		RequiredRoles: map[string]int{"server": 1},
	})
	require.NoError(t, err)

	for _, status := range []domain.EventStatus{
		domain.EventStatusApproved,
		domain.EventStatusLive,
		domain.EventStatusCompleted,
	} {
		event, err = svc.UpdateStatus(ctx, event.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, event.Status)
	}

	_, err = svc.UpdateStatus(ctx, event.ID, domain.EventStatusLive)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"), "completed events are terminal")

	_, err = svc.UpdateStatus(ctx, "missing", domain.EventStatusApproved)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
