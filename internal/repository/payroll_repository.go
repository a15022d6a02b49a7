package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staffing-engine/internal/domain"
)

// PayrollRepository encapsulates payroll item persistence.
type PayrollRepository interface {
	Create(ctx context.Context, item *domain.PayrollItem) error
	GetByShift(ctx context.Context, shiftID string) (*domain.PayrollItem, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.PayrollItem, error)
	UpdateStatus(ctx context.Context, id string, status domain.PayrollStatus) error
}

type payrollRepository struct {
	pool *pgxpool.Pool
}

// NewPayrollRepository instantiates repository.
func NewPayrollRepository(pool *pgxpool.Pool) PayrollRepository {
	return &payrollRepository{pool: pool}
}

func (r *payrollRepository) Create(ctx context.Context, item *domain.PayrollItem) error {
	const query = `
        INSERT INTO payroll_items (id, staff_id, event_id, shift_id, hours_worked, hourly_rate,
                                   overtime_hours, overtime_rate, bonus, deductions, allowances,
                                   total_amount, status, needs_review, derived_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.StaffID,
		item.EventID,
		item.ShiftID,
		item.HoursWorked,
		item.HourlyRate,
		item.OvertimeHours,
		item.OvertimeRate,
		item.Bonus,
		item.Deductions,
		item.Allowances,
		item.TotalAmount,
		item.Status,
		item.NeedsReview,
		item.DerivedAt,
	)
	return err
}

const payrollColumns = `id, staff_id, event_id, shift_id, hours_worked, hourly_rate, overtime_hours,
        overtime_rate, bonus, deductions, allowances, total_amount, status, needs_review, derived_at`

func (r *payrollRepository) GetByShift(ctx context.Context, shiftID string) (*domain.PayrollItem, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_items WHERE shift_id=$1`
	item, err := scanPayrollItem(r.pool.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *payrollRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.PayrollItem, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_items WHERE event_id=$1 ORDER BY derived_at, id`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PayrollItem
	for rows.Next() {
		item, err := scanPayrollItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status domain.PayrollStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE payroll_items SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPayrollItem(row pgx.Row) (*domain.PayrollItem, error) {
	var item domain.PayrollItem
	if err := row.Scan(
		&item.ID,
		&item.StaffID,
		&item.EventID,
		&item.ShiftID,
		&item.HoursWorked,
		&item.HourlyRate,
		&item.OvertimeHours,
		&item.OvertimeRate,
		&item.Bonus,
		&item.Deductions,
		&item.Allowances,
		&item.TotalAmount,
		&item.Status,
		&item.NeedsReview,
		&item.DerivedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
