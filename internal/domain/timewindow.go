package domain

import (
	"fmt"
	"time"
)

// TimeWindow is a half-open interval [StartAt, EndAt).
type TimeWindow struct {
	StartAt time.Time
	EndAt   time.Time
}

// NewTimeWindow validates bounds. End must be strictly after start.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	w := TimeWindow{StartAt: start, EndAt: end}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// ErrInvalidWindow is returned for malformed windows (end <= start or zero bounds).
type ErrInvalidWindow struct {
	Window TimeWindow
}

func (e ErrInvalidWindow) Error() string {
	return fmt.Sprintf("invalid time window [%s, %s)", e.Window.StartAt, e.Window.EndAt)
}

// Validate rejects windows where the end does not come after the start.
func (w TimeWindow) Validate() error {
	if w.StartAt.IsZero() || w.EndAt.IsZero() || !w.EndAt.After(w.StartAt) {
		return ErrInvalidWindow{Window: w}
	}
	return nil
}

// Overlaps reports whether two half-open windows share at least one instant.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.StartAt.Before(other.EndAt) && other.StartAt.Before(w.EndAt)
}

// Duration returns the window length.
func (w TimeWindow) Duration() time.Duration {
	return w.EndAt.Sub(w.StartAt)
}

// Hours returns the window length in fractional hours.
func (w TimeWindow) Hours() float64 {
	return w.Duration().Hours()
}
