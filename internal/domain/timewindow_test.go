package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, startHour, endHour int) TimeWindow {
	t.Helper()
	base := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	w, err := NewTimeWindow(base.Add(time.Duration(startHour)*time.Hour), base.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return w
}

func TestTimeWindowValidate(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid", now, now.Add(time.Hour), false},
		{"end equals start", now, now, true},
		{"end before start", now.Add(time.Hour), now, true},
		{"zero start", time.Time{}, now, true},
		{"zero end", now, time.Time{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTimeWindow(tc.start, tc.end)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeWindowOverlapsHalfOpen(t *testing.T) {
	a := window(t, 9, 12)

	assert.True(t, a.Overlaps(window(t, 11, 14)), "partial overlap")
	assert.True(t, a.Overlaps(window(t, 10, 11)), "containment")
	assert.True(t, window(t, 10, 11).Overlaps(a), "containment reversed")
	assert.False(t, a.Overlaps(window(t, 12, 15)), "touching end is not overlap")
	assert.False(t, window(t, 6, 9).Overlaps(a), "touching start is not overlap")
	assert.False(t, a.Overlaps(window(t, 14, 16)), "disjoint")
}

func TestTimeWindowHours(t *testing.T) {
	assert.InDelta(t, 3.0, window(t, 9, 12).Hours(), 1e-9)
	assert.InDelta(t, 10.5, TimeWindow{
		StartAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
	}.Hours(), 1e-9)
}
