package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/events"
	"github.com/spec-kit/staffing-engine/internal/observability"
	"github.com/spec-kit/staffing-engine/internal/repository"
	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

// ConflictSource tells which side of a conflict a window came from.
type ConflictSource string

const (
	SourceExistingShift ConflictSource = "EXISTING_SHIFT"
	SourceProposed      ConflictSource = "PROPOSED"
)

// ProposedSlot is one entry of a candidate schedule to check.
type ProposedSlot struct {
	StaffID string
	Window  domain.TimeWindow
	Label   string
}

// ConflictWindow names one side of a detected overlap.
type ConflictWindow struct {
	Source  ConflictSource
	ShiftID string
	Label   string
	Window  domain.TimeWindow
}

// ConflictReport names both overlapping windows for a staff member.
type ConflictReport struct {
	StaffID string
	First   ConflictWindow
	Second  ConflictWindow
}

// ConflictService batch-checks a roster schedule for overlaps, both within
// the proposal itself and against already-committed shifts.
type ConflictService struct {
	shifts     repository.ShiftRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// NewConflictService creates the service.
func NewConflictService(shifts repository.ShiftRepository, dispatcher events.Dispatcher, metrics *observability.Metrics) *ConflictService {
	return &ConflictService{shifts: shifts, dispatcher: dispatcher, metrics: metrics}
}

// DetectConflicts reports every overlapping pair. Intervals are sorted per
// staff member and swept, so the cost is O(n log n) plus the conflicts
// actually found, never a full pairwise scan of the roster.
func (s *ConflictService) DetectConflicts(ctx context.Context, schedule []ProposedSlot) ([]ConflictReport, error) {
	byStaff := make(map[string][]ConflictWindow)
	for i := range schedule {
		slot := schedule[i]
		if err := slot.Window.Validate(); err != nil {
			return nil, apperrors.NewInvalidWindow(err.Error(), map[string]any{"staff_id": slot.StaffID, "label": slot.Label})
		}
		byStaff[slot.StaffID] = append(byStaff[slot.StaffID], ConflictWindow{
			Source: SourceProposed,
			Label:  slot.Label,
			Window: slot.Window,
		})
	}

	staffIDs := make([]string, 0, len(byStaff))
	for staffID := range byStaff {
		staffIDs = append(staffIDs, staffID)
	}
	sort.Strings(staffIDs)

	var reports []ConflictReport
	for _, staffID := range staffIDs {
		windows := byStaff[staffID]

		existing, err := s.shifts.ListByStaff(ctx, staffID)
		if err != nil {
			return nil, apperrors.NewStorageUnavailable(err)
		}
		for i := range existing {
			windows = append(windows, ConflictWindow{
				Source:  SourceExistingShift,
				ShiftID: existing[i].ID,
				Window:  existing[i].Window,
			})
		}

		found := sweepOverlaps(staffID, windows)
		if len(found) > 0 {
			reports = append(reports, found...)
			s.metrics.ConflictsDetected.Add(float64(len(found)))
			s.publishDetected(ctx, staffID, len(found))
		}
	}
	return reports, nil
}

// sweepOverlaps sorts windows by start and, for each window, scans forward
// only while starts fall before its end. Windows sorted after that point
// cannot overlap it.
func sweepOverlaps(staffID string, windows []ConflictWindow) []ConflictReport {
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Window.StartAt.Equal(windows[j].Window.StartAt) {
			return windows[i].Window.EndAt.Before(windows[j].Window.EndAt)
		}
		return windows[i].Window.StartAt.Before(windows[j].Window.StartAt)
	})

	var reports []ConflictReport
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if !windows[j].Window.StartAt.Before(windows[i].Window.EndAt) {
				break
			}
			reports = append(reports, ConflictReport{
				StaffID: staffID,
				First:   windows[i],
				Second:  windows[j],
			})
		}
	}
	return reports
}

func (s *ConflictService) publishDetected(ctx context.Context, staffID string, count int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventConflictDetected,
		Timestamp: time.Now(),
		Payload:   events.ConflictDetectedPayload{StaffID: staffID, Count: count},
	})
}
