package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// ShiftRepository encapsulates shift persistence. Create enforces the
// per-staff no-overlap invariant at the storage layer; this is the second
// guard against double-booking across concurrently assigned events.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
	GetByAssignment(ctx context.Context, eventID, staffID, role string) (*domain.Shift, error)
	ListByStaff(ctx context.Context, staffID string) ([]domain.Shift, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Shift, error)
	Update(ctx context.Context, shift *domain.Shift) error
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository instantiates repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	// Conditional insert: refused when any non-cancelled shift of the same
	// staff member overlaps the new window.
	const query = `
        INSERT INTO shifts (id, event_id, staff_id, role, start_at, end_at, status, confirmation, hourly_wage)
        SELECT $1,$2,$3,$4,$5,$6,$7,$8,$9
        WHERE NOT EXISTS (
            SELECT 1 FROM shifts
            WHERE staff_id=$3 AND status <> 'CANCELLED' AND start_at < $6 AND $5 < end_at
        )
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		shift.ID,
		shift.EventID,
		shift.StaffID,
		shift.Role,
		shift.Window.StartAt,
		shift.Window.EndAt,
		shift.Status,
		shift.Confirmation,
		shift.HourlyWage,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrShiftOverlap
	}
	return err
}

const shiftColumns = `id, event_id, staff_id, role, start_at, end_at, status, confirmation,
        hourly_wage, check_in_at, check_out_at, hours_worked, overtime_hours, created_at, updated_at`

func (r *shiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *shiftRepository) GetByAssignment(ctx context.Context, eventID, staffID, role string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts
        WHERE event_id=$1 AND staff_id=$2 AND role=$3 AND status <> 'CANCELLED'`
	return r.fetchSingle(ctx, query, eventID, staffID, role)
}

func (r *shiftRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Shift, error) {
	shift, err := scanShift(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return shift, nil
}

func (r *shiftRepository) ListByStaff(ctx context.Context, staffID string) ([]domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts
        WHERE staff_id=$1 AND status <> 'CANCELLED' ORDER BY start_at`
	return r.list(ctx, query, staffID)
}

func (r *shiftRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE event_id=$1 ORDER BY start_at`
	return r.list(ctx, query, eventID)
}

func (r *shiftRepository) list(ctx context.Context, query string, args ...any) ([]domain.Shift, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *shift)
	}
	return result, rows.Err()
}

func (r *shiftRepository) Update(ctx context.Context, shift *domain.Shift) error {
	const query = `
        UPDATE shifts SET status=$2, confirmation=$3, check_in_at=$4, check_out_at=$5,
            hours_worked=$6, overtime_hours=$7, updated_at=NOW()
        WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query,
		shift.ID,
		shift.Status,
		shift.Confirmation,
		shift.CheckInAt,
		shift.CheckOutAt,
		shift.HoursWorked,
		shift.OvertimeHours,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShift(row pgx.Row) (*domain.Shift, error) {
	var shift domain.Shift
	if err := row.Scan(
		&shift.ID,
		&shift.EventID,
		&shift.StaffID,
		&shift.Role,
		&shift.Window.StartAt,
		&shift.Window.EndAt,
		&shift.Status,
		&shift.Confirmation,
		&shift.HourlyWage,
		&shift.CheckInAt,
		&shift.CheckOutAt,
		&shift.HoursWorked,
		&shift.OvertimeHours,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}
