package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// EventRepository encapsulates event persistence. All mutating methods take
// the version the caller read; a stale version yields ErrVersionConflict.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	UpdateStatus(ctx context.Context, eventID string, status domain.EventStatus, expectedVersion int64) error
	AppendAssignment(ctx context.Context, assignment *domain.Assignment, expectedVersion int64) error
	SaveAssignmentStatus(ctx context.Context, event *domain.Event, assignmentID string, expectedVersion int64) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	rolesJSON, err := json.Marshal(event.RequiredRoles)
	if err != nil {
		return fmt.Errorf("marshal required roles: %w", err)
	}
	event.RecomputeStaffCounts()
	event.Version = 1
	const query = `
        INSERT INTO events (id, title, location, start_at, end_at, status, required_roles, staff_required, staff_assigned, version)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Location,
		event.Window.StartAt,
		event.Window.EndAt,
		event.Status,
		rolesJSON,
		event.StaffRequired,
		event.StaffAssigned,
		event.Version,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, title, location, start_at, end_at, status, required_roles, staff_required, staff_assigned, version, created_at, updated_at
        FROM events WHERE id=$1`
	var event domain.Event
	var rolesJSON []byte
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Location,
		&event.Window.StartAt,
		&event.Window.EndAt,
		&event.Status,
		&rolesJSON,
		&event.StaffRequired,
		&event.StaffAssigned,
		&event.Version,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(rolesJSON, &event.RequiredRoles); err != nil {
		return nil, fmt.Errorf("unmarshal required roles: %w", err)
	}

	assignments, err := r.listAssignments(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Assignments = assignments
	return &event, nil
}

func (r *eventRepository) listAssignments(ctx context.Context, eventID string) ([]domain.Assignment, error) {
	const query = `
        SELECT id, event_id, staff_id, role, status, payment_type, payment_rate, payment_hours,
               payment_bonus, payment_deductions, payment_allowances, total_payment, assigned_at
        FROM assignments WHERE event_id=$1 ORDER BY assigned_at, id`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(
			&a.ID,
			&a.EventID,
			&a.StaffID,
			&a.Role,
			&a.Status,
			&a.Terms.Type,
			&a.Terms.Rate,
			&a.Terms.Hours,
			&a.Terms.Bonus,
			&a.Terms.Deductions,
			&a.Terms.Allowances,
			&a.TotalPayment,
			&a.AssignedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *eventRepository) UpdateStatus(ctx context.Context, eventID string, status domain.EventStatus, expectedVersion int64) error {
	const query = `
        UPDATE events SET status=$2, version=version+1, updated_at=NOW()
        WHERE id=$1 AND version=$3`
	cmd, err := r.pool.Exec(ctx, query, eventID, status, expectedVersion)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, eventID)
	}
	return nil
}

// AppendAssignment commits one role-slot pick: the event version is bumped
// conditionally and the assignment row inserted in the same transaction.
func (r *eventRepository) AppendAssignment(ctx context.Context, assignment *domain.Assignment, expectedVersion int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE events SET version=version+1, updated_at=NOW() WHERE id=$1 AND version=$2`,
		assignment.EventID, expectedVersion)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, assignment.EventID)
	}

	const insert = `
        INSERT INTO assignments (id, event_id, staff_id, role, status, payment_type, payment_rate, payment_hours,
                                 payment_bonus, payment_deductions, payment_allowances, total_payment, assigned_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	if _, err := tx.Exec(ctx, insert,
		assignment.ID,
		assignment.EventID,
		assignment.StaffID,
		assignment.Role,
		assignment.Status,
		assignment.Terms.Type,
		assignment.Terms.Rate,
		assignment.Terms.Hours,
		assignment.Terms.Bonus,
		assignment.Terms.Deductions,
		assignment.Terms.Allowances,
		assignment.TotalPayment,
		assignment.AssignedAt,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SaveAssignmentStatus persists an in-memory status transition together with
// the recomputed staff_assigned count, guarded by the event version.
func (r *eventRepository) SaveAssignmentStatus(ctx context.Context, event *domain.Event, assignmentID string, expectedVersion int64) error {
	assignment := event.AssignmentByID(assignmentID)
	if assignment == nil {
		return ErrNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE events SET staff_assigned=$2, version=version+1, updated_at=NOW() WHERE id=$1 AND version=$3`,
		event.ID, event.StaffAssigned, expectedVersion)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, event.ID)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE assignments SET status=$2 WHERE id=$1 AND event_id=$3`,
		assignmentID, assignment.Status, event.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// conflictOrMissing distinguishes a lost optimistic race from a missing row.
func (r *eventRepository) conflictOrMissing(ctx context.Context, eventID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id=$1)`, eventID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrVersionConflict
}
