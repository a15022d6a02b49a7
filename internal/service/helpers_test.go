package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/staffing-engine/internal/config"
	"github.com/spec-kit/staffing-engine/internal/domain"
	"github.com/spec-kit/staffing-engine/internal/events"
	"github.com/spec-kit/staffing-engine/internal/observability"
	"github.com/spec-kit/staffing-engine/internal/repository"
)

var testBase = time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

func zapNop() *zap.Logger { return zap.NewNop() }

func newTestMetrics() *observability.Metrics { return observability.NewTestMetrics() }

func testWindow(startHour, endHour int) domain.TimeWindow {
	return domain.TimeWindow{
		StartAt: testBase.Add(time.Duration(startHour) * time.Hour),
		EndAt:   testBase.Add(time.Duration(endHour) * time.Hour),
	}
}

func testSchedulingConfig() config.SchedulingConfig {
	return config.SchedulingConfig{
		CommitRetries:            3,
		OvertimeMultiplier:       1.5,
		DefaultHourlyRate:        20,
		AutoAssignCandidateLimit: 100,
	}
}

// engineFixture wires every service against in-memory repositories.
type engineFixture struct {
	events      *repository.MemoryEventRepository
	staff       *repository.MemoryStaffRepository
	shifts      *repository.MemoryShiftRepository
	payroll     *repository.MemoryPayrollRepository
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	assignments *AssignmentService
	shiftSvc    *ShiftService
	payrollSvc  *PayrollService
	conflicts   *ConflictService
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	eventRepo := repository.NewMemoryEventRepository()
	staffRepo := repository.NewMemoryStaffRepository()
	shiftRepo := repository.NewMemoryShiftRepository()
	payrollRepo := repository.NewMemoryPayrollRepository()

	logger := zap.NewNop()
	metrics := observability.NewTestMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	availability := NewAvailabilityService(shiftRepo, nil, 0, logger)
	cfg := testSchedulingConfig()

	return &engineFixture{
		events:     eventRepo,
		staff:      staffRepo,
		shifts:     shiftRepo,
		payroll:    payrollRepo,
		dispatcher: dispatcher,
		metrics:    metrics,
		assignments: NewAssignmentService(cfg, AssignmentDependencies{
			EventRepo:    eventRepo,
			StaffRepo:    staffRepo,
			Matcher:      NewMatcher(availability),
			Availability: availability,
			Dispatcher:   dispatcher,
			Metrics:      metrics,
			Logger:       logger,
		}),
		shiftSvc: NewShiftService(cfg, ShiftDependencies{
			EventRepo:    eventRepo,
			ShiftRepo:    shiftRepo,
			StaffRepo:    staffRepo,
			Availability: availability,
			Dispatcher:   dispatcher,
			Metrics:      metrics,
			Logger:       logger,
		}),
		payrollSvc: NewPayrollService(cfg, PayrollDependencies{
			EventRepo:   eventRepo,
			ShiftRepo:   shiftRepo,
			PayrollRepo: payrollRepo,
			Dispatcher:  dispatcher,
			Metrics:     metrics,
			Logger:      logger,
		}),
		conflicts: NewConflictService(shiftRepo, dispatcher, metrics),
	}
}

func (f *engineFixture) seedEvent(t *testing.T, id string, window domain.TimeWindow, roles map[string]int) *domain.Event {
	t.Helper()
	event := &domain.Event{
		ID:            id,
		Title:         "Test Event " + id,
		Location:      "downtown",
		Window:        window,
		Status:        domain.EventStatusApproved,
		RequiredRoles: roles,
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event
}

func availableStaff(id, name, role string) domain.StaffProfile {
	return domain.StaffProfile{
		ID:           id,
		Name:         name,
		RoleCategory: role,
		Location:     "downtown",
		Skills:       []domain.Skill{{Name: role, Status: domain.SkillVerified}},
		Rating:       4.0,
		Availability: domain.StaffAvailable,
	}
}

// collectEvents records every published event of the given types.
func collectEvents(dispatcher events.Dispatcher, types ...events.EventType) *eventRecorder {
	rec := &eventRecorder{}
	for _, eventType := range types {
		dispatcher.Subscribe(eventType, rec.record)
	}
	return rec
}

type eventRecorder struct {
	mu   sync.Mutex
	seen []events.Event
}

func (r *eventRecorder) record(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, event)
	return nil
}

func (r *eventRecorder) ofType(eventType events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.seen {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
